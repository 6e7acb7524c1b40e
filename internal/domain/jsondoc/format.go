package jsondoc

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Format validates raw and, if well-formed, re-serializes it canonically
// under the given options. Formatting never repairs invalid input.
// PRE: opts.Indent is within [MinIndent, MaxIndent] (callers normalize first)
// POST: no side effects; Success implies FormattedText round-trips to a value
// deep-equal to the input
func Format(raw string, opts FormatOptions) FormatResult {
	validation := Validate(raw)
	if !validation.IsValid {
		return FormatResult{
			Success:      false,
			ErrorMessage: validation.ErrorMessage,
			LineCount:    0,
			Kind:         validation.Kind,
		}
	}

	root, err := parseOrdered(raw)
	if err != nil {
		// Validation passed, so this branch should be unreachable.
		return FormatResult{
			Success:      false,
			ErrorMessage: truncateMessage("Unexpected error during formatting: " + err.Error()),
			LineCount:    0,
			Kind:         KindProcessing,
		}
	}

	var b strings.Builder
	writeValue(&b, root, opts, 0)
	out := b.String()

	return FormatResult{
		Success:       true,
		FormattedText: out,
		LineCount:     strings.Count(out, "\n") + 1,
	}
}

// value is an order-preserving parse tree node. encoding/json's map decoding
// loses member order, so formatting with SortKeys=false needs its own tree.
type value struct {
	typeName string // one of the Type* constants
	str      string
	num      json.Number
	boolean  bool
	items    []*value
	members  []member
}

type member struct {
	key string
	val *value
}

// parseOrdered decodes raw into a value tree, preserving object member
// encounter order. Duplicate keys keep the first position with the last
// value, matching common decoder behavior.
func parseOrdered(raw string) (*value, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	root, err := parseNext(dec)
	if err != nil {
		return nil, err
	}
	// Reject trailing content after the top-level value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return root, nil
}

func parseNext(dec *json.Decoder) (*value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return &value{typeName: TypeString, str: t}, nil
	case json.Number:
		return &value{typeName: numberTypeName(t), num: t}, nil
	case bool:
		return &value{typeName: TypeBoolean, boolean: t}, nil
	case nil:
		return &value{typeName: TypeNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*value, error) {
	obj := &value{typeName: TypeObject}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseNext(dec)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			obj.members[i].val = val
			continue
		}
		index[key] = len(obj.members)
		obj.members = append(obj.members, member{key: key, val: val})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*value, error) {
	arr := &value{typeName: TypeArray}
	for dec.More() {
		item, err := parseNext(dec)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, item)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// numberTypeName distinguishes integer literals from other numerics by their
// source text: no '.', 'e', or 'E' means integer.
func numberTypeName(n json.Number) string {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return TypeNumber
	}
	return TypeInteger
}

// writeValue serializes v at the given nesting depth. Empty containers stay
// on one line; all other containers put each child on its own line.
func writeValue(b *strings.Builder, v *value, opts FormatOptions, depth int) {
	switch v.typeName {
	case TypeNull:
		b.WriteString("null")
	case TypeBoolean:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TypeInteger:
		b.WriteString(v.num.String())
	case TypeNumber:
		b.WriteString(formatFloat(v.num))
	case TypeString:
		writeString(b, v.str)
	case TypeArray:
		writeArray(b, v, opts, depth)
	case TypeObject:
		writeObject(b, v, opts, depth)
	}
}

func writeArray(b *strings.Builder, v *value, opts FormatOptions, depth int) {
	if len(v.items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, item := range v.items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		writeIndent(b, opts.Indent, depth+1)
		writeValue(b, item, opts, depth+1)
	}
	b.WriteByte('\n')
	writeIndent(b, opts.Indent, depth)
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, v *value, opts FormatOptions, depth int) {
	if len(v.members) == 0 {
		b.WriteString("{}")
		return
	}
	members := v.members
	if opts.SortKeys {
		members = make([]member, len(v.members))
		copy(members, v.members)
		sort.Slice(members, func(i, j int) bool { return members[i].key < members[j].key })
	}
	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		writeIndent(b, opts.Indent, depth+1)
		writeString(b, m.key)
		b.WriteString(": ")
		writeValue(b, m.val, opts, depth+1)
	}
	b.WriteByte('\n')
	writeIndent(b, opts.Indent, depth)
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, indent, depth int) {
	if indent <= 0 {
		return
	}
	for i := 0; i < depth; i++ {
		for j := 0; j < indent; j++ {
			b.WriteByte(' ')
		}
	}
}

// formatFloat re-serializes a non-integer literal with the shortest
// representation that round-trips through float64.
func formatFloat(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		// Out-of-range literals keep their source text.
		return n.String()
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeString emits s as a JSON string literal. Non-ASCII characters are
// emitted literally rather than \u-escaped, and no HTML escaping is applied,
// so formatted output stays human-readable.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
