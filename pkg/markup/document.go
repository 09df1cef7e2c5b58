package markup

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
nav a { display: inline-block; padding: 0.2em 0.5em; text-decoration: none; }
nav a.active { font-weight: bold; }
</style>
</head>
<body>
{{range .Containers}}<div id="{{.ID}}">{{.Inner}}</div>
{{end}}</body>
</html>
`))

// Document is an ordered set of containers.
type Document struct {
	Title      string
	containers []*Container
}

// NewDocument creates a [Document] holding the given containers, in order.
func NewDocument(title string, containers ...*Container) *Document {
	return &Document{Title: title, containers: containers}
}

// Add appends a container to the document.
func (d *Document) Add(c *Container) {
	d.containers = append(d.containers, c)
}

// Query returns the container matching an ID selector such as "#items".
func (d *Document) Query(selector string) (*Container, error) {
	id, ok := strings.CutPrefix(selector, "#")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
	}

	for _, c := range d.containers {
		if c.ID == id {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
}

type pageContainer struct {
	ID    string
	Inner template.HTML
}

// WriteTo writes the document as a complete HTML page.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data := struct {
		Title      string
		Containers []pageContainer
	}{Title: d.Title}

	for _, c := range d.containers {
		data.Containers = append(data.Containers, pageContainer{
			ID: c.ID,
			//nolint:gosec // Container content is produced by trusted renderers.
			Inner: template.HTML(c.inner),
		})
	}

	cw := &countingWriter{w: w}

	err := pageTemplate.Execute(cw, data)
	if err != nil {
		return cw.n, fmt.Errorf("execute template: %w", err)
	}

	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	return n, err //nolint:wrapcheck // Pass through.
}
