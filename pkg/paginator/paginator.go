package paginator

import (
	"errors"
	"fmt"
	"log/slog"
)

// Defaults applied by [New] when a size is not set.
const (
	DefaultPageSize     = 10
	DefaultItemsPerPage = 10
)

// ErrInvalidConfig is returned by [New] when a required option is missing.
var ErrInvalidConfig = errors.New("invalid paginator config")

// Config configures a [Paginator].
type Config struct {
	// Items receives the markup of the items on the current page.
	Items ItemSink
	// Nav receives the navigation buttons.
	Nav NavSink
	// Source produces the items. Sources implementing [Validator] are
	// validated; other sources are trusted to render every index below Len.
	Source Source
	// PageSize is the number of numbered buttons per navigation window.
	// Values <= 0 select [DefaultPageSize].
	PageSize int
	// ItemsPerPage is the number of items on each page.
	// Values <= 0 select [DefaultItemsPerPage].
	ItemsPerPage int
}

// Paginator tracks the current page of a [Source] and renders it.
// It is not safe for concurrent use; each instance owns its sinks.
type Paginator struct {
	items        ItemSink
	nav          NavSink
	source       Source
	pageSize     int
	itemsPerPage int
	page         int
}

// New creates a [Paginator] and renders page 1.
func New(cfg Config) (*Paginator, error) {
	switch {
	case cfg.Items == nil:
		return nil, fmt.Errorf("%w: missing item sink", ErrInvalidConfig)
	case cfg.Nav == nil:
		return nil, fmt.Errorf("%w: missing navigation sink", ErrInvalidConfig)
	case cfg.Source == nil:
		return nil, fmt.Errorf("%w: missing source", ErrInvalidConfig)
	}

	err := validateSource(cfg.Source)
	if err != nil {
		return nil, err
	}

	p := &Paginator{
		items:        cfg.Items,
		nav:          cfg.Nav,
		source:       cfg.Source,
		pageSize:     orDefault(cfg.PageSize, DefaultPageSize),
		itemsPerPage: orDefault(cfg.ItemsPerPage, DefaultItemsPerPage),
	}
	p.SetPage(MinPage)

	return p, nil
}

func validateSource(src Source) error {
	v, ok := src.(Validator)
	if !ok {
		return nil
	}

	err := v.Validate()
	if err != nil {
		return fmt.Errorf("%w: source: %w", ErrInvalidConfig, err)
	}

	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}

// SetPage moves to page v, clamped into [MinPage, MaxPage], and re-renders
// the items and the navigation. Rendering happens even if the page did not
// change.
func (p *Paginator) SetPage(v int) {
	p.page = Clamp(v, MinPage, p.MaxPage())

	slog.Debug("set page",
		slog.Int("requested", v),
		slog.Int("page", p.page),
		slog.Int("max_page", p.MaxPage()),
	)

	p.renderItems()
	p.renderNavigation()
}

// Refresh re-renders the current page.
func (p *Paginator) Refresh() {
	p.SetPage(p.page)
}

// SetSource replaces the item source, keeping the current page if it is still
// valid, and re-renders. An invalid source is rejected with
// [ErrInvalidConfig] and the current source is kept.
func (p *Paginator) SetSource(src Source) error {
	if src == nil {
		return fmt.Errorf("%w: missing source", ErrInvalidConfig)
	}

	err := validateSource(src)
	if err != nil {
		return err
	}

	p.source = src
	p.SetPage(p.page)

	return nil
}

// Page returns the current page.
func (p *Paginator) Page() int { return p.page }

// MinPage returns the lowest valid page, which is always [MinPage].
func (p *Paginator) MinPage() int { return MinPage }

// MaxPage returns the highest valid page. It is at least [MinPage], even
// when the source is empty.
func (p *Paginator) MaxPage() int {
	return MaxPageFor(p.source.Len(), p.itemsPerPage)
}

// PageSize returns the number of numbered buttons per window.
func (p *Paginator) PageSize() int { return p.pageSize }

// ItemsPerPage returns the number of items per page.
func (p *Paginator) ItemsPerPage() int { return p.itemsPerPage }

// Total returns the number of items in the source.
func (p *Paginator) Total() int { return p.source.Len() }

// Window returns the navigation window that contains the current page.
func (p *Paginator) Window() Window {
	return WindowFor(p.page, p.pageSize, p.MaxPage())
}

// ItemRange returns the half-open index range of the items on the current
// page.
func (p *Paginator) ItemRange() (int, int) {
	return ItemRange(p.page, p.itemsPerPage, p.source.Len())
}

// Buttons returns the navigation buttons for the current page, in display
// order.
func (p *Paginator) Buttons() []Button {
	w := p.Window()
	maxPage := p.MaxPage()

	buttons := make([]Button, 0, w.Len()+4)

	if w.First > p.pageSize {
		buttons = append(buttons,
			newButton(KindFirst, MinPage, p.goTo(MinPage)),
			newButton(KindPrev, w.First-1, p.goTo(w.First-1)),
		)
	}

	for _, n := range w.Pages() {
		if n == p.page {
			b := newButton(KindNumber, n, nil)
			b.Active = true
			buttons = append(buttons, b)

			continue
		}

		buttons = append(buttons, newButton(KindNumber, n, p.goTo(n)))
	}

	if w.Last < maxPage {
		buttons = append(buttons,
			newButton(KindNext, w.Last+1, p.goTo(w.Last+1)),
			newButton(KindLast, maxPage, p.goTo(maxPage)),
		)
	}

	return buttons
}

func (p *Paginator) goTo(page int) func() {
	return func() { p.SetPage(page) }
}

func (p *Paginator) renderItems() {
	start, end := p.ItemRange()

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, p.source.Markup(i))
	}

	p.items.SetItems(items)
}

func (p *Paginator) renderNavigation() {
	p.nav.SetButtons(p.Buttons())
}
