package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/crazyman1830/jsonformatter/internal/adapters/http/middleware"
	commentStore "github.com/crazyman1830/jsonformatter/internal/adapters/storage/comment"
	"github.com/crazyman1830/jsonformatter/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	CommentStore commentStore.Store
}

// Options carries the configuration NewMux needs.
type Options struct {
	CSRFKey       string // hex-encoded 32-byte secret, empty = random per start
	RateLimit     int    // requests per minute per client
	MaxBodyBytes  int64
	DefaultIndent int
	CacheSize     int
	Production    bool
}

// loadCSRFKey decodes the configured CSRF secret (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(keyHex string, production bool) []byte {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("csrf key must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if production {
		log.Fatal("csrf key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set JSONFMT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global format cache (set by NewMux)
var formatCache *orchestrators.FormatCache

// Default indent applied when a request omits or mangles the indent field
// (set by NewMux)
var defaultIndent = 2

// registerRoutes attaches the API handlers to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/", handleAPIIndex)
	mux.HandleFunc("/api/format", handleFormat)
	mux.HandleFunc("/api/validate", handleValidate)
	mux.HandleFunc("/api/analyze", handleAnalyze)
	mux.HandleFunc("/api/process", handleProcess)
	mux.HandleFunc("/api/comments", handleComments)
	mux.HandleFunc("/docs", handleDocs)
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, opts Options) http.Handler {
	stores = s
	defaultIndent = opts.DefaultIndent
	middleware.SecureCookies = opts.Production

	cache, err := orchestrators.NewFormatCache(opts.CacheSize)
	if err != nil {
		log.Fatalf("failed to build format cache: %v", err)
	}
	formatCache = cache

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	csrfKey := loadCSRFKey(opts.CSRFKey, opts.Production)
	limiter := middleware.NewRateLimiter(opts.RateLimit, time.Minute)

	// Apply middleware: Timing -> MaxBytes -> RateLimit -> Session -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Session(),
		middleware.RateLimit(limiter),
		middleware.MaxBytes(opts.MaxBodyBytes),
		middleware.Timing(),
	)
}
