package paginator

import "errors"

// Source produces markup for the item at an absolute index.
// Implementations must not have side effects that the paginator can observe.
type Source interface {
	// Len returns the total number of items.
	Len() int
	// Markup returns the rendered markup for the item at index i,
	// where 0 <= i < Len().
	Markup(i int) string
}

// ErrNilRender is returned when a [Slice] or [Indexed] has no Render func.
var ErrNilRender = errors.New("nil render func")

// Validator is implemented by sources that can report a misconfiguration
// before they are rendered. [New] and [Paginator.SetSource] check it.
type Validator interface {
	Validate() error
}

// Slice is a [Source] backed by a slice of data.
type Slice[T any] struct {
	Render func(item T) string
	Data   []T
}

// Len implements [Source].
func (s Slice[T]) Len() int {
	return len(s.Data)
}

// Validate implements [Validator].
func (s Slice[T]) Validate() error {
	if s.Render == nil {
		return ErrNilRender
	}

	return nil
}

// Markup implements [Source].
func (s Slice[T]) Markup(i int) string {
	return s.Render(s.Data[i])
}

// Indexed is a [Source] that only knows the item count, and renders items by
// index.
type Indexed struct {
	Render func(i int) string
	Count  int
}

// Len implements [Source].
func (s Indexed) Len() int {
	return max(0, s.Count)
}

// Validate implements [Validator].
func (s Indexed) Validate() error {
	if s.Render == nil {
		return ErrNilRender
	}

	return nil
}

// Markup implements [Source].
func (s Indexed) Markup(i int) string {
	return s.Render(i)
}

// Compile-time interface checks.
var (
	_ Source = Slice[string]{}
	_ Source = Indexed{}

	_ Validator = Slice[string]{}
	_ Validator = Indexed{}
)
