package orchestrators

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/crazyman1830/jsonformatter/internal/domain/jsondoc"
)

// DefaultFormatCacheSize bounds the number of cached format results.
const DefaultFormatCacheSize = 256

// FormatCache memoizes format results for repeated identical requests.
// Safe for concurrent use.
type FormatCache struct {
	cache *lru.Cache[string, jsondoc.FormatResult]
}

// NewFormatCache creates a FormatCache holding up to size entries.
// PRE: size > 0
func NewFormatCache(size int) (*FormatCache, error) {
	c, err := lru.New[string, jsondoc.FormatResult](size)
	if err != nil {
		return nil, fmt.Errorf("format cache: %w", err)
	}
	return &FormatCache{cache: c}, nil
}

func cacheKey(raw string, opts jsondoc.FormatOptions) string {
	return fmt.Sprintf("%d|%t|%s", opts.Indent, opts.SortKeys, raw)
}

// FormatDocumentInput carries input for the format orchestrator.
type FormatDocumentInput struct {
	RawText string
	Options jsondoc.FormatOptions
}

// FormatDocumentDeps holds dependencies for FormatDocument.
type FormatDocumentDeps struct {
	Cache *FormatCache // optional: nil disables memoization
}

// ExecuteFormatDocument formats a document, consulting the cache first.
// PRE: Options.Indent is within jsondoc.MinIndent..jsondoc.MaxIndent
// POST: identical inputs yield identical results, cached or not
func ExecuteFormatDocument(input FormatDocumentInput, deps FormatDocumentDeps) jsondoc.FormatResult {
	if deps.Cache == nil {
		return jsondoc.Format(input.RawText, input.Options)
	}

	key := cacheKey(input.RawText, input.Options)
	if result, ok := deps.Cache.cache.Get(key); ok {
		return result
	}

	result := jsondoc.Format(input.RawText, input.Options)
	if result.Success {
		deps.Cache.cache.Add(key, result)
	}
	return result
}
