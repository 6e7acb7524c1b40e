package web

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

//go:embed docs/api.md
var apiDocs []byte

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>JSON Formatter API</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
code, pre { background: #f4f4f4; border-radius: 3px; }
pre { padding: 0.75rem; overflow-x: auto; }
code { padding: 0.1rem 0.3rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
`

// handleDocs renders the embedded API reference as HTML.
func handleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, http.StatusMethodNotAllowed, codeValidation, "Method not allowed")
		return
	}

	var buf bytes.Buffer
	buf.WriteString(docsPage)
	if err := mdRenderer.Convert(apiDocs, &buf); err != nil {
		internalError(w, err)
		return
	}
	buf.WriteString("</body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
