// Package markup renders a [paginator.Paginator] to HTML.
//
// A [Container] stands in for a DOM element: it holds inner HTML and is
// replaced wholesale on every render. Containers are grouped in a
// [Document], which can look them up by selector and write out a complete
// HTML page.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/macropower/pgn/pkg/paginator"
)

// Identities of the navigation elements.
const (
	IDFirst     = "firstPrev"
	IDPrev      = "prev"
	IDNext      = "next"
	IDLast      = "lastNext"
	ClassPage   = "pageItem"
	ClassActive = "active"
)

var (
	ErrNotFound        = errors.New("container not found")
	ErrInvalidSelector = errors.New("invalid selector")

	navTemplate = template.Must(template.New("nav").Parse(
		`{{range .}}<a{{if .Clickable}} href="{{.Href}}"{{end}}` +
			`{{with .ID}} id="{{.}}"{{end}}{{with .Class}} class="{{.}}"{{end}}` +
			`{{if .Clickable}} data-page="{{.Page}}"{{end}}>{{.Label}}</a>{{end}}`,
	))
)

// HrefFunc builds the link target for a button that moves to page.
type HrefFunc func(page int) string

// QueryHref links to "?page=N".
func QueryHref(page int) string {
	return "?page=" + strconv.Itoa(page)
}

// Container holds the inner HTML of one render target.
type Container struct {
	href  HrefFunc
	ID    string
	inner string
}

// NewContainer creates a [Container] with the given element ID.
func NewContainer(id string, opts ...ContainerOpt) *Container {
	c := &Container{ID: id, href: QueryHref}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ContainerOpt configures a [Container].
type ContainerOpt func(*Container)

// WithHref sets the link builder used for navigation buttons.
func WithHref(fn HrefFunc) ContainerOpt {
	return func(c *Container) {
		if fn != nil {
			c.href = fn
		}
	}
}

// SetItems implements [paginator.ItemSink]. Item markup is trusted and
// concatenated as-is.
func (c *Container) SetItems(items []string) {
	c.inner = strings.Join(items, "")
}

// SetButtons implements [paginator.NavSink].
func (c *Container) SetButtons(buttons []paginator.Button) {
	html, err := RenderButtons(buttons, c.href)
	if err != nil {
		// Only reachable if the template itself is broken.
		panic(fmt.Errorf("render navigation: %w", err))
	}

	c.inner = html
}

// InnerHTML returns the current content.
func (c *Container) InnerHTML() string {
	return c.inner
}

type navButton struct {
	Href      string
	ID        string
	Class     string
	Label     string
	Page      int
	Clickable bool
}

// RenderButtons renders navigation buttons as a run of <a> elements.
// Numbered buttons carry the "pageItem" class. The current page additionally
// carries "active", and has neither a link target nor a data-page attribute.
func RenderButtons(buttons []paginator.Button, href HrefFunc) (string, error) {
	if href == nil {
		href = QueryHref
	}

	data := make([]navButton, 0, len(buttons))
	for _, b := range buttons {
		nb := navButton{
			Label:     b.Label,
			Page:      b.Page,
			Clickable: b.Clickable(),
		}
		if nb.Clickable {
			nb.Href = href(b.Page)
		}

		switch b.Kind {
		case paginator.KindFirst:
			nb.ID = IDFirst
		case paginator.KindPrev:
			nb.ID = IDPrev
		case paginator.KindNext:
			nb.ID = IDNext
		case paginator.KindLast:
			nb.ID = IDLast
		case paginator.KindNumber:
			nb.Class = ClassPage
			if b.Active {
				nb.Class += " " + ClassActive
			}
		}

		data = append(data, nb)
	}

	var buf bytes.Buffer

	err := navTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// Compile-time interface checks.
var (
	_ paginator.ItemSink = (*Container)(nil)
	_ paginator.NavSink  = (*Container)(nil)
)
