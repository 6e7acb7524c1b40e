package jsondoc

import "encoding/json"

// JSON type names as reported by the analyzer. Numbers with no fractional or
// exponent part are reported as "integer", everything else numeric as "number".
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// ErrorKind classifies a failed operation so callers can map it to an
// appropriate transport status without parsing message text.
type ErrorKind string

const (
	// KindSyntax means the input was not well-formed JSON. Expected, routine.
	KindSyntax ErrorKind = "syntax"
	// KindInput means the input failed preconditions before any parse ran.
	KindInput ErrorKind = "input"
	// KindProcessing means an internal failure after validation passed.
	KindProcessing ErrorKind = "processing"
)

// MaxErrorMessageLength caps diagnostic text included in results.
const MaxErrorMessageLength = 500

// ValidationResult reports whether a raw text blob is well-formed JSON.
// ErrorMessage and LineNumber are populated only when IsValid is false;
// LineNumber only when the parser reported a position.
type ValidationResult struct {
	IsValid      bool      `json:"is_valid"`
	ErrorMessage string    `json:"error_message,omitempty"`
	LineNumber   int       `json:"line_number,omitempty"`
	Kind         ErrorKind `json:"-"`
}

// FormatOptions controls canonical re-serialization.
type FormatOptions struct {
	Indent   int  // spaces per nesting level, 0..10. 0 keeps newlines, no indentation.
	SortKeys bool // lexicographic key order when true, encounter order otherwise
}

// DefaultIndent is used when a caller supplies no usable indent value.
const DefaultIndent = 2

// MinIndent and MaxIndent bound the accepted indent range.
const (
	MinIndent = 0
	MaxIndent = 10
)

// DefaultFormatOptions returns the canonical defaults: two-space indent,
// sorted keys.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Indent: DefaultIndent, SortKeys: true}
}

// FormatResult carries the output of a Format call.
// INVARIANT: Success is true iff FormattedText is set and ErrorMessage is empty.
// LineCount is the newline-delimited line count of FormattedText, 0 on failure.
type FormatResult struct {
	Success       bool      `json:"success"`
	FormattedText string    `json:"formatted_json"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	LineCount     int       `json:"line_count"`
	Kind          ErrorKind `json:"-"`
}

// StructureInfo describes the top-level shape of a parsed JSON value.
// Exactly one of IsObject/IsArray/IsPrimitive is true when Valid.
type StructureInfo struct {
	Valid       bool
	TypeName    string
	IsObject    bool
	IsArray     bool
	IsPrimitive bool
	KeyCount    int
	Keys        []string
	ItemCount   int
	ItemTypes   []string
	RawLength   int
	RawLines    int
	Error       string
}

// MarshalJSON emits only the fields that apply to the analyzed shape: key
// fields for objects, item fields for arrays, just the diagnostic when
// invalid. Empty containers serialize explicit zero counts and empty lists.
func (s StructureInfo) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"valid":        s.Valid,
		"is_object":    s.IsObject,
		"is_array":     s.IsArray,
		"is_primitive": s.IsPrimitive,
	}
	if !s.Valid {
		m["error"] = s.Error
		return json.Marshal(m)
	}
	m["type"] = s.TypeName
	m["raw_length"] = s.RawLength
	m["raw_lines"] = s.RawLines
	if s.IsObject {
		keys := s.Keys
		if keys == nil {
			keys = []string{}
		}
		m["key_count"] = s.KeyCount
		m["keys"] = keys
	}
	if s.IsArray {
		types := s.ItemTypes
		if types == nil {
			types = []string{}
		}
		m["item_count"] = s.ItemCount
		m["item_types"] = types
	}
	return json.Marshal(m)
}

// MaxObjectKeys bounds the Keys list in StructureInfo. Objects with more keys
// report the first MaxObjectKeys in encounter order; KeyCount is always exact.
const MaxObjectKeys = 50

// MaxSampledItems bounds how many array elements contribute to ItemTypes.
// ItemCount is always exact; type sampling never scans past this many elements.
const MaxSampledItems = 10

// truncateMessage caps a diagnostic message at MaxErrorMessageLength runes so
// envelopes stay bounded regardless of input size.
func truncateMessage(msg string) string {
	if len(msg) <= MaxErrorMessageLength {
		return msg
	}
	r := []rune(msg)
	if len(r) <= MaxErrorMessageLength {
		return msg
	}
	return string(r[:MaxErrorMessageLength-3]) + "..."
}
