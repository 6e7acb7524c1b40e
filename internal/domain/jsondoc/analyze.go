package jsondoc

import "strings"

// Analyze classifies the top-level shape of raw: object, array, or primitive.
// Invalid input yields {Valid:false, Error:<validator message>} with no other
// fields populated.
// POST: no side effects; exactly one of IsObject/IsArray/IsPrimitive is true
// when Valid
func Analyze(raw string) StructureInfo {
	validation := Validate(raw)
	if !validation.IsValid {
		return StructureInfo{Valid: false, Error: validation.ErrorMessage}
	}

	root, err := parseOrdered(raw)
	if err != nil {
		return StructureInfo{Valid: false, Error: truncateMessage("Error analyzing structure: " + err.Error())}
	}

	info := StructureInfo{
		Valid:     true,
		TypeName:  root.typeName,
		RawLength: len(raw),
		RawLines:  countLines(raw),
	}

	switch root.typeName {
	case TypeObject:
		info.IsObject = true
		info.KeyCount = len(root.members)
		limit := len(root.members)
		if limit > MaxObjectKeys {
			limit = MaxObjectKeys
		}
		info.Keys = make([]string, 0, limit)
		for _, m := range root.members[:limit] {
			info.Keys = append(info.Keys, m.key)
		}
	case TypeArray:
		info.IsArray = true
		info.ItemCount = len(root.items)
		info.ItemTypes = sampleItemTypes(root.items)
	default:
		info.IsPrimitive = true
	}

	return info
}

// sampleItemTypes returns the distinct JSON type names seen among the first
// MaxSampledItems elements, in first-seen order. Analysis never scans past
// the sample window regardless of array length.
func sampleItemTypes(items []*value) []string {
	limit := len(items)
	if limit > MaxSampledItems {
		limit = MaxSampledItems
	}
	seen := make(map[string]bool, limit)
	var types []string
	for _, item := range items[:limit] {
		if seen[item.typeName] {
			continue
		}
		seen[item.typeName] = true
		types = append(types, item.typeName)
	}
	return types
}

// countLines counts newline-delimited lines the way splitlines does: a
// trailing newline does not start an extra line, and empty input has 0 lines.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
