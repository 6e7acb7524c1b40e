package jsondoc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// emptyInputMessage is returned for empty or whitespace-only input, which is
// rejected before any parse is attempted.
const emptyInputMessage = "Input cannot be empty"

// Validate checks whether raw is well-formed JSON (RFC 8259).
// PRE: none; raw may be any string
// POST: no side effects; on failure the message reads
// "Invalid JSON at line L column C: <reason>" when a position is available
func Validate(raw string) ValidationResult {
	if strings.TrimSpace(raw) == "" {
		return ValidationResult{
			IsValid:      false,
			ErrorMessage: emptyInputMessage,
			Kind:         KindInput,
		}
	}

	var probe any
	err := json.Unmarshal([]byte(raw), &probe)
	if err == nil {
		return ValidationResult{IsValid: true}
	}

	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		line, col := lineColAt(raw, syntaxErr.Offset)
		return ValidationResult{
			IsValid:      false,
			ErrorMessage: truncateMessage(fmt.Sprintf("Invalid JSON at line %d column %d: %s", line, col, syntaxErr.Error())),
			LineNumber:   line,
			Kind:         KindSyntax,
		}
	}

	// Decode errors without a position (e.g. invalid UTF-8 surfaced as a
	// generic error) still count as syntax failures.
	return ValidationResult{
		IsValid:      false,
		ErrorMessage: truncateMessage("Invalid JSON: " + err.Error()),
		Kind:         KindSyntax,
	}
}

// lineColAt converts a 1-based byte offset from encoding/json into 1-based
// line and column numbers. The offset points just past the first byte the
// parser could not consume.
func lineColAt(raw string, offset int64) (int, int) {
	if offset < 1 {
		offset = 1
	}
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
		if offset == 0 {
			return 1, 1
		}
	}
	prefix := raw[:offset-1]
	line := 1 + strings.Count(prefix, "\n")
	col := int(offset-1) - strings.LastIndexByte(prefix, '\n')
	return line, col
}
