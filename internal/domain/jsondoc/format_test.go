package jsondoc_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/crazyman1830/jsonformatter/internal/domain/jsondoc"
)

// TestFormat_SortedKeys tests lexicographic key ordering.
func TestFormat_SortedKeys(t *testing.T) {
	result := jsondoc.Format(`{"b":1,"a":2}`, jsondoc.FormatOptions{Indent: 2, SortKeys: true})
	if !result.Success {
		t.Fatalf("Format failed: %s", result.ErrorMessage)
	}
	want := "{\n  \"a\": 2,\n  \"b\": 1\n}"
	if result.FormattedText != want {
		t.Errorf("got:\n%s\nwant:\n%s", result.FormattedText, want)
	}
	if result.LineCount != 4 {
		t.Errorf("got line count %d, want 4", result.LineCount)
	}
}

// TestFormat_PreservedOrder tests encounter-order output with SortKeys off.
func TestFormat_PreservedOrder(t *testing.T) {
	result := jsondoc.Format(`{"b":1,"a":2}`, jsondoc.FormatOptions{Indent: 2, SortKeys: false})
	if !result.Success {
		t.Fatalf("Format failed: %s", result.ErrorMessage)
	}
	want := "{\n  \"b\": 1,\n  \"a\": 2\n}"
	if result.FormattedText != want {
		t.Errorf("got:\n%s\nwant:\n%s", result.FormattedText, want)
	}
}

// TestFormat_Shapes tests serialization across value shapes and options.
func TestFormat_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		opts jsondoc.FormatOptions
		want string
	}{
		{
			name: "empty object",
			raw:  `{}`,
			opts: jsondoc.DefaultFormatOptions(),
			want: `{}`,
		},
		{
			name: "empty array",
			raw:  `[]`,
			opts: jsondoc.DefaultFormatOptions(),
			want: `[]`,
		},
		{
			name: "top-level string",
			raw:  `"hi"`,
			opts: jsondoc.DefaultFormatOptions(),
			want: `"hi"`,
		},
		{
			name: "top-level integer",
			raw:  `42`,
			opts: jsondoc.DefaultFormatOptions(),
			want: `42`,
		},
		{
			name: "array of scalars",
			raw:  `[1,true,null]`,
			opts: jsondoc.DefaultFormatOptions(),
			want: "[\n  1,\n  true,\n  null\n]",
		},
		{
			name: "nested structure",
			raw:  `{"a":{"c":1,"b":[2]}}`,
			opts: jsondoc.FormatOptions{Indent: 2, SortKeys: true},
			want: "{\n  \"a\": {\n    \"b\": [\n      2\n    ],\n    \"c\": 1\n  }\n}",
		},
		{
			name: "zero indent keeps newlines",
			raw:  `{"a":1,"b":2}`,
			opts: jsondoc.FormatOptions{Indent: 0, SortKeys: true},
			want: "{\n\"a\": 1,\n\"b\": 2\n}",
		},
		{
			name: "wide indent",
			raw:  `{"a":1}`,
			opts: jsondoc.FormatOptions{Indent: 4, SortKeys: true},
			want: "{\n    \"a\": 1\n}",
		},
		{
			name: "non-ascii emitted literally",
			raw:  `{"name":"日本語","emoji":"🎌"}`,
			opts: jsondoc.FormatOptions{Indent: 2, SortKeys: true},
			want: "{\n  \"emoji\": \"🎌\",\n  \"name\": \"日本語\"\n}",
		},
		{
			name: "control characters escaped",
			raw:  `{"a":"line1\nline2\ttab"}`,
			opts: jsondoc.FormatOptions{Indent: 2, SortKeys: true},
			want: "{\n  \"a\": \"line1\\nline2\\ttab\"\n}",
		},
		{
			name: "integers stay integral",
			raw:  `[1,-7,1000000]`,
			opts: jsondoc.DefaultFormatOptions(),
			want: "[\n  1,\n  -7,\n  1000000\n]",
		},
		{
			name: "float shortest round-trip",
			raw:  `[1.50,2.0e0]`,
			opts: jsondoc.DefaultFormatOptions(),
			want: "[\n  1.5,\n  2\n]",
		},
		{
			name: "html characters not escaped",
			raw:  `{"a":"<b> & </b>"}`,
			opts: jsondoc.DefaultFormatOptions(),
			want: "{\n  \"a\": \"<b> & </b>\"\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := jsondoc.Format(tt.raw, tt.opts)
			if !result.Success {
				t.Fatalf("Format failed: %s", result.ErrorMessage)
			}
			if result.FormattedText != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", result.FormattedText, tt.want)
			}
			wantLines := strings.Count(tt.want, "\n") + 1
			if result.LineCount != wantLines {
				t.Errorf("got line count %d, want %d", result.LineCount, wantLines)
			}
		})
	}
}

// TestFormat_InvalidInput tests that formatting never repairs bad input.
func TestFormat_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unterminated object", raw: `{"key": "value"`},
		{name: "empty", raw: ``},
		{name: "whitespace", raw: `   `},
		{name: "bare word", raw: `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := jsondoc.Format(tt.raw, jsondoc.DefaultFormatOptions())
			if result.Success {
				t.Fatal("Format succeeded on invalid input")
			}
			if result.ErrorMessage == "" {
				t.Error("failure carried no error message")
			}
			if result.LineCount != 0 {
				t.Errorf("got line count %d, want 0", result.LineCount)
			}
			if result.FormattedText != "" {
				t.Errorf("failure carried formatted text %q", result.FormattedText)
			}
		})
	}
}

// TestFormat_Idempotent tests format∘format == format for fixed options.
func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		`{"b":1,"a":{"d":[1,2,{"z":null}],"c":"text"}}`,
		`[1,2.5,"三",true,null,{},[]]`,
		`"plain"`,
		`{"nums":[1e3,0.1,-2.25e-2]}`,
	}
	for _, opts := range []jsondoc.FormatOptions{
		{Indent: 2, SortKeys: true},
		{Indent: 0, SortKeys: true},
		{Indent: 4, SortKeys: false},
	} {
		for _, raw := range inputs {
			first := jsondoc.Format(raw, opts)
			if !first.Success {
				t.Fatalf("Format(%q) failed: %s", raw, first.ErrorMessage)
			}
			second := jsondoc.Format(first.FormattedText, opts)
			if !second.Success {
				t.Fatalf("reformat of %q failed: %s", raw, second.ErrorMessage)
			}
			if first.FormattedText != second.FormattedText {
				t.Errorf("not idempotent for %q with %+v:\nfirst:  %q\nsecond: %q",
					raw, opts, first.FormattedText, second.FormattedText)
			}
		}
	}
}

// TestFormat_RoundTrip tests deep equality of parsed input and parsed output.
func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"b":1,"a":{"d":[1,2,{"z":null}],"c":"text"}}`,
		`[0.5,"x",false,null,[{"k":"v"}]]`,
		`{"unicode":"héllo wörld 中文"}`,
	}
	for _, raw := range inputs {
		result := jsondoc.Format(raw, jsondoc.DefaultFormatOptions())
		if !result.Success {
			t.Fatalf("Format(%q) failed: %s", raw, result.ErrorMessage)
		}
		var before, after any
		if err := json.Unmarshal([]byte(raw), &before); err != nil {
			t.Fatalf("reparse input: %v", err)
		}
		if err := json.Unmarshal([]byte(result.FormattedText), &after); err != nil {
			t.Fatalf("reparse output: %v", err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Errorf("round trip changed value for %q:\n%v\nvs\n%v", raw, before, after)
		}
	}
}

// TestFormat_NoProcessingErrorOnValidInput tests the defensive branch stays
// unreachable for anything the validator accepts.
func TestFormat_NoProcessingErrorOnValidInput(t *testing.T) {
	inputs := []string{
		`{"dup":1,"dup":2}`,
		`[[[[[[1]]]]]]`,
		`{"big":123456789012345678901234567890}`,
	}
	for _, raw := range inputs {
		result := jsondoc.Format(raw, jsondoc.DefaultFormatOptions())
		if !result.Success {
			t.Errorf("Format(%q) failed: %s (kind=%s)", raw, result.ErrorMessage, result.Kind)
		}
	}
}

// TestFormat_DuplicateKeys tests that duplicates collapse to the last value.
func TestFormat_DuplicateKeys(t *testing.T) {
	result := jsondoc.Format(`{"a":1,"a":2}`, jsondoc.DefaultFormatOptions())
	if !result.Success {
		t.Fatalf("Format failed: %s", result.ErrorMessage)
	}
	want := "{\n  \"a\": 2\n}"
	if result.FormattedText != want {
		t.Errorf("got %q, want %q", result.FormattedText, want)
	}
}
