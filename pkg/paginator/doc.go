// Package paginator slices an in-memory sequence of items into pages and
// drives two render targets: one for the items on the current page, and one
// for the page navigation strip.
//
// A [Paginator] owns a single piece of state, the current page. Every
// assignment through [Paginator.SetPage] clamps the requested page into the
// valid range and then re-renders both targets, in that order, before
// returning.
//
// # Sources
//
// Items are produced by a [Source]. Use [Slice] when the items are already in
// a slice, or [Indexed] when only a count and an index-based callback are
// available:
//
//	src := paginator.Slice[string]{
//	    Data:   lines,
//	    Render: func(s string) string { return "<li>" + s + "</li>" },
//	}
//
// # Sinks
//
// Rendering is delegated to an [ItemSink] and a [NavSink]. The navigation
// sink receives an ordered slice of [Button] descriptors:
//
//	<<  <  6 [7] 8 9 10  >  >>
//
// First and Prev appear only when an earlier window exists, Next and Last
// only when a later window exists. Calling [Button.Click] on any button except
// the active one moves the paginator to that button's page.
//
//	c := &paginator.Container{}
//	p, err := paginator.New(paginator.Config{
//	    Items:        c,
//	    Nav:          c,
//	    Source:       src,
//	    PageSize:     5,
//	    ItemsPerPage: 10,
//	})
package paginator
