package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "jsonfmt_session"

// SessionHeaderName lets API clients carry their session without cookies.
const SessionHeaderName = "X-Session-ID"

// SecureCookies controls the Secure flag on issued cookies. Set true in
// production behind TLS.
var SecureCookies = false

// Session returns middleware that resolves the caller's session identifier
// and stores it in the request context. Resolution order: X-Session-ID
// header, session cookie, freshly minted UUID (set as a cookie on the
// response). A header carrying a malformed identifier is rejected.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeaderName)
			if id != "" {
				if err := comment.ValidateSessionID(id); err != nil {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte(`{"success":false,"error_code":"VALIDATION_ERROR","error_message":"Invalid session identifier"}`))
					return
				}
			} else if cookie, err := r.Cookie(sessionCookieName); err == nil {
				if comment.ValidateSessionID(cookie.Value) == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				SetSessionCookie(w, id)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext extracts the session identifier from the request context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionContextKey).(string)
	return id, ok && id != ""
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
	})
}
