package comment

import (
	"errors"
	"strings"
	"time"
)

// MaxSessionIDLength bounds accepted session identifiers.
const MaxSessionIDLength = 255

// MaxLineLength bounds a single comment line.
const MaxLineLength = 2000

// ErrInvalidSessionID is returned when a session identifier is empty, too
// long, or contains characters outside [A-Za-z0-9_-].
var ErrInvalidSessionID = errors.New("invalid session id")

// ErrNegativeTarget is returned when a sync is requested against a negative
// line count.
var ErrNegativeTarget = errors.New("target line count must not be negative")

// Set is the comment block attached to one session, one string per line of
// the formatted document it annotates.
// INVARIANT: Lines never contains a raw CR or LF; line boundaries live in the
// slice structure, not in the strings.
type Set struct {
	SessionID string
	Lines     []string
	UpdatedAt time.Time
}

// ValidateSessionID checks that id is usable as a storage key.
// PRE: none
// POST: returns ErrInvalidSessionID unless id is 1..MaxSessionIDLength
// characters drawn from [A-Za-z0-9_-]
func ValidateSessionID(id string) error {
	if id == "" || len(id) > MaxSessionIDLength {
		return ErrInvalidSessionID
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return ErrInvalidSessionID
		}
	}
	return nil
}

// SplitText breaks a free-text comment block into storable lines.
// PRE: none
// POST: line endings are normalized (CRLF and CR become LF), each line is
// trimmed of surrounding whitespace and capped at MaxLineLength runes, and
// blank lines are dropped
func SplitText(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > MaxLineLength {
			line = string(r[:MaxLineLength])
		}
		lines = append(lines, line)
	}
	return lines
}

// JoinLines renders stored lines back into a single text block.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Synchronize adjusts a comment block to match the line count of a newly
// formatted document. The result is always a fresh slice.
// PRE: target >= 0
// POST: len(result) == target; existing lines keep their positions, extra
// positions are filled with "", surplus lines are dropped from the end
func Synchronize(lines []string, target int) ([]string, error) {
	if target < 0 {
		return nil, ErrNegativeTarget
	}
	synced := make([]string, target)
	copy(synced, lines)
	return synced, nil
}
