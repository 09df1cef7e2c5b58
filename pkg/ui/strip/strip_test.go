package strip_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/ui/strip"
	"github.com/macropower/pgn/pkg/ui/theme"
)

func newPaginator(t *testing.T, total int, nav paginator.NavSink, items paginator.ItemSink) *paginator.Paginator {
	t.Helper()

	p, err := paginator.New(paginator.Config{
		Items:        items,
		Nav:          nav,
		Source:       paginator.Indexed{Count: total, Render: func(i int) string { return "item " + string(rune('a'+i%26)) }},
		PageSize:     3,
		ItemsPerPage: 2,
	})
	require.NoError(t, err)

	return p
}

func TestRenderer_View(t *testing.T) {
	t.Parallel()

	r := strip.NewRenderer(theme.Default, 80)
	p := newPaginator(t, 20, r, strip.NewItems(theme.Default))

	assert.Equal(t, " 1  2  3  >  >> ", ansi.Strip(r.View()))

	p.SetPage(5)
	assert.Equal(t, " <<  <  4  5  6  >  >> ", ansi.Strip(r.View()))

	p.SetPage(10)
	assert.Equal(t, " <<  <  10 ", ansi.Strip(r.View()))
}

func TestRenderer_ButtonAt(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		x    int
		kind paginator.ButtonKind
		page int
		ok   bool
	}{
		"first cell":  {x: 0, kind: paginator.KindNumber, page: 1, ok: true},
		"second cell": {x: 4, kind: paginator.KindNumber, page: 2, ok: true},
		"next":        {x: 10, kind: paginator.KindNext, page: 4, ok: true},
		"last":        {x: 13, kind: paginator.KindLast, page: 10, ok: true},
		"past end":    {x: 40, ok: false},
		"negative":    {x: -1, ok: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := strip.NewRenderer(theme.Default, 80)
			newPaginator(t, 20, r, strip.NewItems(theme.Default))

			b, ok := r.ButtonAt(tc.x)
			require.Equal(t, tc.ok, ok)

			if tc.ok {
				assert.Equal(t, tc.kind, b.Kind)
				assert.Equal(t, tc.page, b.Page)
			}
		})
	}
}

func TestRenderer_ClickAt(t *testing.T) {
	t.Parallel()

	r := strip.NewRenderer(theme.Default, 80)
	p := newPaginator(t, 20, r, strip.NewItems(theme.Default))

	next, ok := r.ButtonAt(10)
	require.True(t, ok)
	assert.True(t, next.Click())
	assert.Equal(t, 4, p.Page())
}

func TestRenderer_Focus(t *testing.T) {
	t.Parallel()

	r := strip.NewRenderer(theme.Default, 80)
	p := newPaginator(t, 20, r, strip.NewItems(theme.Default))

	b, ok := r.Focused()
	require.True(t, ok)
	assert.True(t, b.Active)
	assert.Equal(t, 1, b.Page)

	r.FocusPrev()
	b, _ = r.Focused()
	assert.Equal(t, 1, b.Page)

	r.FocusNext()
	r.FocusNext()
	b, _ = r.Focused()
	assert.Equal(t, 3, b.Page)

	assert.True(t, b.Click())
	assert.Equal(t, 3, p.Page())

	// Focus resets to the new active button after a render.
	b, _ = r.Focused()
	assert.True(t, b.Active)
	assert.Equal(t, 3, b.Page)

	for range 10 {
		r.FocusNext()
	}

	b, _ = r.Focused()
	assert.Equal(t, paginator.KindLast, b.Kind)
}

func TestRenderer_Width(t *testing.T) {
	t.Parallel()

	r := strip.NewRenderer(theme.Default, 8)
	newPaginator(t, 20, r, strip.NewItems(theme.Default))

	assert.Equal(t, " 1  2 ", ansi.Strip(r.View()))

	_, ok := r.ButtonAt(7)
	assert.False(t, ok)

	r.SetWidth(0)
	assert.Equal(t, " 1  2  3  >  >> ", ansi.Strip(r.View()))
}

func TestRenderer_FocusStaysOnDrawnButtons(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		moves    func(r *strip.Renderer)
		wantPage int
	}{
		"next stops at last drawn": {
			moves: func(r *strip.Renderer) {
				for range 10 {
					r.FocusNext()
				}
			},
			wantPage: 2,
		},
		"prev from cut off button": {
			moves: func(r *strip.Renderer) {
				r.SetWidth(0)
				for range 10 {
					r.FocusNext()
				}
				r.SetWidth(8)
				r.FocusPrev()
			},
			wantPage: 2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := strip.NewRenderer(theme.Default, 8)
			newPaginator(t, 20, r, strip.NewItems(theme.Default))
			require.Len(t, r.Buttons(), 5)

			tc.moves(r)

			b, ok := r.Focused()
			require.True(t, ok)
			assert.Equal(t, paginator.KindNumber, b.Kind)
			assert.Equal(t, tc.wantPage, b.Page)

			x := strings.Index(ansi.Strip(r.View()), " 2 ")
			at, ok := r.ButtonAt(x)
			require.True(t, ok)
			assert.Equal(t, b.Page, at.Page)
		})
	}
}

func TestRenderer_FocusCutOff(t *testing.T) {
	t.Parallel()

	r := strip.NewRenderer(theme.Default, 0)
	newPaginator(t, 20, r, strip.NewItems(theme.Default))

	for range 10 {
		r.FocusNext()
	}

	b, ok := r.Focused()
	require.True(t, ok)
	assert.Equal(t, paginator.KindLast, b.Kind)

	// The last button no longer fits.
	r.SetWidth(8)
	_, ok = r.Focused()
	assert.False(t, ok)
}

func TestItems_View(t *testing.T) {
	t.Parallel()

	it := strip.NewItems(theme.Default)
	it.SetItems([]string{"alpha", "a much longer line", "gamma"})

	assert.Equal(t, 3, it.Len())
	assert.Equal(t, "alpha\na much longer line\ngamma", ansi.Strip(it.View(0, 0)))

	out := ansi.Strip(it.View(8, 2))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "alpha", lines[0])
	assert.Equal(t, "a much …", lines[1])
}

func TestItems_ViewNumbered(t *testing.T) {
	t.Parallel()

	it := strip.NewItems(theme.Default)
	it.SetItems([]string{"k", "l", "a longer item"})

	out := ansi.Strip(it.ViewNumbered(10, 0, 8))
	assert.Equal(t, " 9 k\n10 l\n11 a long…", out)
}
