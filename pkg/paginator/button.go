package paginator

import "strconv"

// ButtonKind identifies the role of a navigation [Button].
type ButtonKind int

const (
	KindFirst  ButtonKind = iota // Jumps to page 1.
	KindPrev                     // Jumps to the last page of the previous window.
	KindNumber                   // Jumps to a page in the current window.
	KindNext                     // Jumps to the first page of the next window.
	KindLast                     // Jumps to the last page.
)

// Button labels.
const (
	LabelFirst = "<<"
	LabelPrev  = "<"
	LabelNext  = ">"
	LabelLast  = ">>"
)

// String returns the identity that consumers style or select buttons by.
func (k ButtonKind) String() string {
	switch k {
	case KindFirst:
		return "first"
	case KindPrev:
		return "prev"
	case KindNumber:
		return "page"
	case KindNext:
		return "next"
	case KindLast:
		return "last"
	}

	return "unknown"
}

// Button describes one clickable element of the navigation strip.
type Button struct {
	onClick func()
	Label   string
	Kind    ButtonKind
	Page    int  // Target page.
	Active  bool // Set on the numbered button for the current page.
}

func newButton(kind ButtonKind, page int, onClick func()) Button {
	b := Button{
		Kind:    kind,
		Page:    page,
		onClick: onClick,
	}

	switch kind {
	case KindFirst:
		b.Label = LabelFirst
	case KindPrev:
		b.Label = LabelPrev
	case KindNext:
		b.Label = LabelNext
	case KindLast:
		b.Label = LabelLast
	default:
		b.Label = strconv.Itoa(page)
	}

	return b
}

// Clickable reports whether the button has a click handler.
// The active page button never does.
func (b Button) Clickable() bool {
	return b.onClick != nil
}

// Click invokes the button's handler and reports whether anything happened.
func (b Button) Click() bool {
	if b.onClick == nil {
		return false
	}

	b.onClick()

	return true
}

// Equal reports whether two buttons describe the same element. Handlers are
// not compared.
func (b Button) Equal(o Button) bool {
	return b.Kind == o.Kind &&
		b.Page == o.Page &&
		b.Label == o.Label &&
		b.Active == o.Active &&
		b.Clickable() == o.Clickable()
}
