package markup

import (
	"fmt"
	"html/template"

	"github.com/macropower/pgn/pkg/paginator"
)

// Container IDs used by [NewPage].
const (
	ItemsID = "items"
	PagesID = "pages"
)

// Item renders one line of text as an escaped item element.
func Item(text string) string {
	return `<div class="item">` + template.HTMLEscapeString(text) + `</div>`
}

// PageConfig configures [NewPage].
type PageConfig struct {
	Source       paginator.Source
	Href         HrefFunc
	Title        string
	PageSize     int
	ItemsPerPage int
}

// Page is a [Document] with an item container and a navigation container,
// driven by its own [paginator.Paginator].
type Page struct {
	*Document
	Paginator *paginator.Paginator
}

// NewPage builds a [Page] showing page 1.
func NewPage(cfg PageConfig) (*Page, error) {
	items := NewContainer(ItemsID)
	pages := NewContainer(PagesID, WithHref(cfg.Href))

	p, err := paginator.New(paginator.Config{
		Items:        items,
		Nav:          pages,
		Source:       cfg.Source,
		PageSize:     cfg.PageSize,
		ItemsPerPage: cfg.ItemsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("create paginator: %w", err)
	}

	return &Page{
		Document:  NewDocument(cfg.Title, items, pages),
		Paginator: p,
	}, nil
}
