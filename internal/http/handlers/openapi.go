package handlers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"sync"
)

//go:embed openapi.json
var openAPISpec []byte

type apiOperation struct {
	Method  string
	Path    string
	Summary string
	Auth    bool
}

type apiIndex struct {
	Title       string
	Version     string
	Description string
	Operations  []apiOperation
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Version}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
td, th { padding: 0.25rem 0.75rem; text-align: left; }
code { font-size: 0.95em; }
</style>
</head>
<body>
<h1>{{.Title}} <small>{{.Version}}</small></h1>
<p>{{.Description}}</p>
<p>Machine-readable description: <a href="/v1/openapi.json">/v1/openapi.json</a></p>
<table>
<tr><th>Method</th><th>Path</th><th>Summary</th><th>Bearer</th></tr>
{{range .Operations}}<tr><td>{{.Method}}</td><td><code>{{.Path}}</code></td><td>{{.Summary}}</td><td>{{if .Auth}}yes{{end}}</td></tr>
{{end}}</table>
</body>
</html>
`))

var (
	docsOnce sync.Once
	docsPage []byte
	docsErr  error
)

// renderDocs builds the HTML index of the embedded API description once.
func renderDocs() ([]byte, error) {
	docsOnce.Do(func() {
		var doc struct {
			Info struct {
				Title       string `json:"title"`
				Version     string `json:"version"`
				Description string `json:"description"`
			} `json:"info"`
			Paths map[string]map[string]struct {
				Summary  string            `json:"summary"`
				Security []json.RawMessage `json:"security"`
			} `json:"paths"`
		}
		if docsErr = json.Unmarshal(openAPISpec, &doc); docsErr != nil {
			return
		}
		idx := apiIndex{Title: doc.Info.Title, Version: doc.Info.Version, Description: doc.Info.Description}
		for path, methods := range doc.Paths {
			for method, op := range methods {
				idx.Operations = append(idx.Operations, apiOperation{
					Method:  strings.ToUpper(method),
					Path:    path,
					Summary: op.Summary,
					Auth:    len(op.Security) > 0,
				})
			}
		}
		sort.Slice(idx.Operations, func(i, j int) bool {
			a, b := idx.Operations[i], idx.Operations[j]
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			return a.Method < b.Method
		})
		var buf bytes.Buffer
		if docsErr = docsTemplate.Execute(&buf, idx); docsErr == nil {
			docsPage = buf.Bytes()
		}
	})
	return docsPage, docsErr
}

// OpenAPIJSON serves the embedded API description.
func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

// OpenAPIDocs serves an HTML index of the API operations.
func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	page, err := renderDocs()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
