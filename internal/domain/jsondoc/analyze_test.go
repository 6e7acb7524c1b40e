package jsondoc_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/crazyman1830/jsonformatter/internal/domain/jsondoc"
)

// TestAnalyze_Object tests key reporting on objects.
func TestAnalyze_Object(t *testing.T) {
	info := jsondoc.Analyze(`{"b":1,"a":{"nested":true},"c":[1,2]}`)
	if !info.Valid {
		t.Fatalf("Analyze failed: %s", info.Error)
	}
	if info.TypeName != jsondoc.TypeObject || !info.IsObject {
		t.Errorf("got type %q is_object=%v, want object", info.TypeName, info.IsObject)
	}
	if info.KeyCount != 3 {
		t.Errorf("got key count %d, want 3", info.KeyCount)
	}
	wantKeys := []string{"b", "a", "c"}
	if !reflect.DeepEqual(info.Keys, wantKeys) {
		t.Errorf("got keys %v, want encounter order %v", info.Keys, wantKeys)
	}
}

// TestAnalyze_ObjectKeyTruncation tests the key list cap on wide objects.
func TestAnalyze_ObjectKeyTruncation(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("{")
	for i := 0; i < 60; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"k%02d":%d`, i, i)
	}
	sb.WriteString("}")

	info := jsondoc.Analyze(sb.String())
	if !info.Valid {
		t.Fatalf("Analyze failed: %s", info.Error)
	}
	if info.KeyCount != 60 {
		t.Errorf("got key count %d, want 60", info.KeyCount)
	}
	if len(info.Keys) != jsondoc.MaxObjectKeys {
		t.Errorf("got %d keys listed, want %d", len(info.Keys), jsondoc.MaxObjectKeys)
	}
	if info.Keys[0] != "k00" || info.Keys[len(info.Keys)-1] != "k49" {
		t.Errorf("got key window %s..%s, want k00..k49", info.Keys[0], info.Keys[len(info.Keys)-1])
	}
}

// TestAnalyze_ArraySampling tests that type sampling stops at the window while
// the element count stays exact.
func TestAnalyze_ArraySampling(t *testing.T) {
	info := jsondoc.Analyze(`[1,"a",true,null,{},[],2,3,4,5,6]`)
	if !info.Valid {
		t.Fatalf("Analyze failed: %s", info.Error)
	}
	if info.TypeName != jsondoc.TypeArray || !info.IsArray {
		t.Errorf("got type %q is_array=%v, want array", info.TypeName, info.IsArray)
	}
	if info.ItemCount != 11 {
		t.Errorf("got item count %d, want 11", info.ItemCount)
	}
	wantTypes := []string{
		jsondoc.TypeInteger, jsondoc.TypeString, jsondoc.TypeBoolean,
		jsondoc.TypeNull, jsondoc.TypeObject, jsondoc.TypeArray,
	}
	if !reflect.DeepEqual(info.ItemTypes, wantTypes) {
		t.Errorf("got item types %v, want %v", info.ItemTypes, wantTypes)
	}
}

// TestAnalyze_Primitives tests scalar roots.
func TestAnalyze_Primitives(t *testing.T) {
	tests := []struct {
		raw      string
		wantType string
	}{
		{raw: `"hi"`, wantType: jsondoc.TypeString},
		{raw: `42`, wantType: jsondoc.TypeInteger},
		{raw: `4.2`, wantType: jsondoc.TypeNumber},
		{raw: `1e3`, wantType: jsondoc.TypeNumber},
		{raw: `true`, wantType: jsondoc.TypeBoolean},
		{raw: `null`, wantType: jsondoc.TypeNull},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			info := jsondoc.Analyze(tt.raw)
			if !info.Valid {
				t.Fatalf("Analyze failed: %s", info.Error)
			}
			if info.TypeName != tt.wantType {
				t.Errorf("got type %q, want %q", info.TypeName, tt.wantType)
			}
			if !info.IsPrimitive || info.IsObject || info.IsArray {
				t.Errorf("got primitive=%v object=%v array=%v, want primitive only",
					info.IsPrimitive, info.IsObject, info.IsArray)
			}
			if info.KeyCount != 0 || info.ItemCount != 0 {
				t.Errorf("scalar root carried counts: keys=%d items=%d", info.KeyCount, info.ItemCount)
			}
		})
	}
}

// TestAnalyze_RawMetrics tests the input size fields.
func TestAnalyze_RawMetrics(t *testing.T) {
	raw := "{\n  \"a\": 1\n}\n"
	info := jsondoc.Analyze(raw)
	if !info.Valid {
		t.Fatalf("Analyze failed: %s", info.Error)
	}
	if info.RawLength != len(raw) {
		t.Errorf("got raw length %d, want %d", info.RawLength, len(raw))
	}
	if info.RawLines != 3 {
		t.Errorf("got raw lines %d, want 3", info.RawLines)
	}
}

// TestAnalyze_EmptyContainerJSON tests that empty containers serialize
// explicit zero counts and empty lists, and that shape fields stay with
// their shape.
func TestAnalyze_EmptyContainerJSON(t *testing.T) {
	obj, err := json.Marshal(jsondoc.Analyze(`{}`))
	if err != nil {
		t.Fatalf("marshal object info: %v", err)
	}
	for _, want := range []string{`"key_count":0`, `"keys":[]`} {
		if !strings.Contains(string(obj), want) {
			t.Errorf("object info %s lacks %s", obj, want)
		}
	}
	if strings.Contains(string(obj), "item_count") {
		t.Errorf("object info %s carries array fields", obj)
	}

	arr, err := json.Marshal(jsondoc.Analyze(`[]`))
	if err != nil {
		t.Fatalf("marshal array info: %v", err)
	}
	for _, want := range []string{`"item_count":0`, `"item_types":[]`} {
		if !strings.Contains(string(arr), want) {
			t.Errorf("array info %s lacks %s", arr, want)
		}
	}
	if strings.Contains(string(arr), "key_count") {
		t.Errorf("array info %s carries object fields", arr)
	}
}

// TestAnalyze_InvalidInput tests error pass-through from validation.
func TestAnalyze_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ``},
		{name: "truncated", raw: `{"a":`},
		{name: "bare word", raw: `banana`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := jsondoc.Analyze(tt.raw)
			if info.Valid {
				t.Fatal("Analyze accepted invalid input")
			}
			if info.Error == "" {
				t.Error("invalid input carried no error")
			}
			if info.TypeName != "" || info.KeyCount != 0 || info.ItemCount != 0 {
				t.Errorf("invalid input carried structure data: %+v", info)
			}
		})
	}
}
