package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/crazyman1830/jsonformatter/internal/adapters/http/middleware"
	"github.com/crazyman1830/jsonformatter/internal/application/orchestrators"
	"github.com/crazyman1830/jsonformatter/internal/domain/comment"
	"github.com/crazyman1830/jsonformatter/internal/domain/jsondoc"
)

// Version reported by the API index.
const Version = "1.0.0"

// Envelope error codes.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeProcessing      = "PROCESSING_ERROR"
	codeInternal        = "INTERNAL_ERROR"
	codeNotFound        = "NOT_FOUND"
	codeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorEnvelope is the uniform failure body for API responses.
type errorEnvelope struct {
	Success      bool   `json:"success"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// writeJSON serializes v with the right content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// apiError writes a failure envelope.
func apiError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, ErrorCode: code, ErrorMessage: message})
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	apiError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeBody decodes the request body and writes the right envelope when it
// can't. Returns false if a response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := strictDecode(r, v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apiError(w, http.StatusRequestEntityTooLarge, codeRequestTooLarge, "Request body too large")
		return false
	}
	apiError(w, http.StatusBadRequest, codeValidation, "Request body must be a JSON object")
	return false
}

// kindStatus maps a domain error kind to an HTTP status and envelope code.
func kindStatus(kind jsondoc.ErrorKind) (int, string) {
	if kind == jsondoc.KindProcessing {
		return http.StatusInternalServerError, codeProcessing
	}
	return http.StatusBadRequest, codeValidation
}

// parseIndent interprets the loosely-typed indent field. Anything that is not
// an in-range whole number falls back to the configured default.
func parseIndent(v any, fallback int) int {
	indent := fallback
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			indent = int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			indent = i
		}
	}
	if indent < jsondoc.MinIndent || indent > jsondoc.MaxIndent {
		return fallback
	}
	return indent
}

// parseSortKeys interprets the loosely-typed sort_keys field. Default is true;
// only an explicit false-ish value disables sorting.
func parseSortKeys(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "false", "0", "no", "off":
			return false
		}
	}
	return true
}

// handleAPIIndex serves GET /api/ with service info and the endpoint map.
func handleAPIIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" && r.URL.Path != "/api" {
		apiError(w, http.StatusNotFound, codeNotFound, "Unknown endpoint")
		return
	}
	if r.Method != http.MethodGet {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "jsonformatter",
		"version": Version,
		"endpoints": map[string]string{
			"POST /api/format":     "Validate and pretty-print a JSON document",
			"POST /api/validate":   "Validate a JSON document",
			"POST /api/analyze":    "Describe the structure of a JSON document",
			"POST /api/process":    "Validate, format, and analyze in one call",
			"GET /api/comments":    "Load the session's line comments",
			"POST /api/comments":   "Save the session's line comments",
			"DELETE /api/comments": "Clear the session's line comments",
			"GET /docs":            "API reference",
		},
	})
}

// documentRequest is the shared body for the document endpoints. Indent and
// SortKeys are loosely typed to accept what browsers actually send.
type documentRequest struct {
	JSONData string `json:"json_data"`
	Indent   any    `json:"indent,omitempty"`
	SortKeys any    `json:"sort_keys,omitempty"`
}

// handleFormat serves POST /api/format.
func handleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := jsondoc.FormatOptions{
		Indent:   parseIndent(req.Indent, defaultIndent),
		SortKeys: parseSortKeys(req.SortKeys),
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	result, err := orchestrators.ExecuteProcessDocument(r.Context(), orchestrators.ProcessDocumentInput{
		RawText:   req.JSONData,
		Options:   opts,
		SessionID: sessionID,
	}, orchestrators.ProcessDocumentDeps{
		Comments: stores.CommentStore,
		Cache:    formatCache,
	})
	if err != nil {
		if errors.Is(err, comment.ErrInvalidSessionID) {
			apiError(w, http.StatusBadRequest, codeValidation, "Invalid session identifier")
			return
		}
		internalError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Format.Success {
		status, _ = kindStatus(result.Format.Kind)
	}
	writeJSON(w, status, result.Format)
}

// handleValidate serves POST /api/validate.
func handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := jsondoc.Validate(req.JSONData)
	status := http.StatusOK
	if !result.IsValid {
		status, _ = kindStatus(result.Kind)
	}
	writeJSON(w, status, result)
}

// handleAnalyze serves POST /api/analyze.
func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, jsondoc.Analyze(req.JSONData))
}

// processResponse is the combined pipeline envelope.
type processResponse struct {
	Success         bool                     `json:"success"`
	Validation      jsondoc.ValidationResult `json:"validation"`
	Format          jsondoc.FormatResult     `json:"format"`
	Structure       jsondoc.StructureInfo    `json:"structure"`
	Comments        []string                 `json:"comments,omitempty"`
	ProcessingSteps []string                 `json:"processing_steps"`
}

// handleProcess serves POST /api/process: the full pipeline in one call.
func handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := jsondoc.FormatOptions{
		Indent:   parseIndent(req.Indent, defaultIndent),
		SortKeys: parseSortKeys(req.SortKeys),
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	result, err := orchestrators.ExecuteProcessDocument(r.Context(), orchestrators.ProcessDocumentInput{
		RawText:   req.JSONData,
		Options:   opts,
		SessionID: sessionID,
	}, orchestrators.ProcessDocumentDeps{
		Comments: stores.CommentStore,
		Cache:    formatCache,
	})
	if err != nil {
		if errors.Is(err, comment.ErrInvalidSessionID) {
			apiError(w, http.StatusBadRequest, codeValidation, "Invalid session identifier")
			return
		}
		internalError(w, err)
		return
	}

	steps := []string{"validation"}
	status := http.StatusOK
	if result.Validation.IsValid {
		steps = append(steps, "formatting", "analysis")
		if result.Comments != nil {
			steps = append(steps, "sync_comments")
		}
	} else {
		status, _ = kindStatus(result.Validation.Kind)
	}

	writeJSON(w, status, processResponse{
		Success:         result.Format.Success,
		Validation:      result.Validation,
		Format:          result.Format,
		Structure:       result.Structure,
		Comments:        result.Comments,
		ProcessingSteps: steps,
	})
}

// commentsResponse is the load envelope for GET /api/comments.
type commentsResponse struct {
	Success  bool     `json:"success"`
	Comments string   `json:"comments"`
	Lines    []string `json:"lines"`
	Exists   bool     `json:"exists"`
}

// handleComments serves GET/POST/DELETE for /api/comments.
func handleComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		apiError(w, http.StatusBadRequest, codeValidation, "No session")
		return
	}
	deps := orchestrators.CommentDeps{Comments: stores.CommentStore}

	switch r.Method {
	case http.MethodGet:
		result, err := orchestrators.ExecuteLoadComments(ctx, sessionID, deps)
		if err != nil {
			if errors.Is(err, comment.ErrInvalidSessionID) {
				apiError(w, http.StatusBadRequest, codeValidation, "Invalid session identifier")
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, commentsResponse{
			Success:  true,
			Comments: result.Text,
			Lines:    result.Lines,
			Exists:   result.Exists,
		})

	case http.MethodPost:
		var req struct {
			Comments string `json:"comments"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		err := orchestrators.ExecuteSaveComments(ctx, orchestrators.SaveCommentsInput{
			SessionID: sessionID,
			Text:      req.Comments,
		}, deps)
		if err != nil {
			if errors.Is(err, comment.ErrInvalidSessionID) {
				apiError(w, http.StatusBadRequest, codeValidation, "Invalid session identifier")
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	case http.MethodDelete:
		if err := orchestrators.ExecuteClearComments(ctx, sessionID, deps); err != nil {
			if errors.Is(err, comment.ErrInvalidSessionID) {
				apiError(w, http.StatusBadRequest, codeValidation, "Invalid session identifier")
				return
			}
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
	}
}
