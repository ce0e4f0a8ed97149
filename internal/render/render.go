// Package render turns a gradient replica into documents: a standalone
// HTML page that reproduces the image with one 1px-tall div per row, or
// JSON for other front ends.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/luka-bacic/img-to-css/internal/gradient"
	"github.com/luka-bacic/img-to-css/internal/ir"
)

// Output selects the document type.
type Output int

const (
	OutputHTML Output = iota
	OutputJSON
)

// ParseOutput converts an output name to an Output.
func ParseOutput(s string) (Output, error) {
	switch s {
	case "html", "":
		return OutputHTML, nil
	case "json":
		return OutputJSON, nil
	default:
		return 0, fmt.Errorf("unknown output format: %q", s)
	}
}

// Extension returns the conventional file extension, including the dot.
func (o Output) Extension() string {
	if o == OutputJSON {
		return ".json"
	}
	return ".html"
}

// Write renders r to w in the selected output.
func (o Output) Write(w io.Writer, r *ir.Replica, title string) error {
	if o == OutputJSON {
		return JSON(w, r)
	}
	return HTML(w, r, title)
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="preview" style="width: {{.Width}}px; height: {{.Height}}px">
{{- range .Rows}}
<div style="height: 1px; background: {{.}}"></div>
{{- end}}
</div>
</body>
</html>
`))

type pageData struct {
	Title  string
	Width  int
	Height int
	Rows   []template.CSS
}

// HTML writes a standalone page that draws r with CSS only. Rows are
// emitted top to bottom, each 1px tall and Width px wide.
func HTML(w io.Writer, r *ir.Replica, title string) error {
	data := pageData{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		Rows:   make([]template.CSS, len(r.Rows)),
	}
	for i, spec := range r.Rows {
		// Specs only contain digits, commas, spaces, '#', and rgba().
		data.Rows[i] = template.CSS(gradient.CSS(spec))
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

type document struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Format string   `json:"format"`
	Rows   []string `json:"rows"`
}

// JSON writes r as an object whose rows are complete CSS background values.
func JSON(w io.Writer, r *ir.Replica) error {
	doc := document{
		Width:  r.Width,
		Height: r.Height,
		Format: r.Format,
		Rows:   make([]string, len(r.Rows)),
	}
	for i, spec := range r.Rows {
		doc.Rows[i] = gradient.CSS(spec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
