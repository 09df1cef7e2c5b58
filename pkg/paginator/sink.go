package paginator

import "slices"

// ItemSink receives the rendered items for the current page, replacing
// whatever it held before.
type ItemSink interface {
	SetItems(items []string)
}

// NavSink receives the navigation buttons for the current page, replacing
// whatever it held before.
type NavSink interface {
	SetButtons(buttons []Button)
}

// ItemSinkFunc adapts a function to an [ItemSink].
type ItemSinkFunc func(items []string)

// SetItems implements [ItemSink].
func (f ItemSinkFunc) SetItems(items []string) { f(items) }

// NavSinkFunc adapts a function to a [NavSink].
type NavSinkFunc func(buttons []Button)

// SetButtons implements [NavSink].
func (f NavSinkFunc) SetButtons(buttons []Button) { f(buttons) }

// Container is an in-memory [ItemSink] and [NavSink] that keeps the most
// recent content it was given.
type Container struct {
	items   []string
	buttons []Button
	renders int
}

// SetItems implements [ItemSink].
func (c *Container) SetItems(items []string) {
	c.items = slices.Clone(items)
	c.renders++
}

// SetButtons implements [NavSink].
func (c *Container) SetButtons(buttons []Button) {
	c.buttons = slices.Clone(buttons)
	c.renders++
}

// Items returns the last rendered items.
func (c *Container) Items() []string {
	return slices.Clone(c.items)
}

// Buttons returns the last rendered buttons.
func (c *Container) Buttons() []Button {
	return slices.Clone(c.buttons)
}

// Renders returns how many times either sink method has been called.
func (c *Container) Renders() int {
	return c.renders
}

// Button returns the first button of the given kind, if present.
// For [KindNumber] buttons, use [Container.Number].
func (c *Container) Button(kind ButtonKind) (Button, bool) {
	for _, b := range c.buttons {
		if b.Kind == kind {
			return b, true
		}
	}

	return Button{}, false
}

// Number returns the numbered button for page, if present.
func (c *Container) Number(page int) (Button, bool) {
	for _, b := range c.buttons {
		if b.Kind == KindNumber && b.Page == page {
			return b, true
		}
	}

	return Button{}, false
}

// Compile-time interface checks.
var (
	_ ItemSink = (*Container)(nil)
	_ NavSink  = (*Container)(nil)
	_ ItemSink = ItemSinkFunc(nil)
	_ NavSink  = NavSinkFunc(nil)
)
