// Package ui provides the interactive terminal front end for a paginator.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/pgn/pkg/keys"
	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/source"
	"github.com/macropower/pgn/pkg/ui/statusbar"
	"github.com/macropower/pgn/pkg/ui/strip"
	"github.com/macropower/pgn/pkg/ui/theme"
)

// ErrNoSource is returned by [NewModel] when [Options.Source] is nil.
var ErrNoSource = errors.New("no item source")

type (
	// ReloadMsg replaces the items being paginated.
	ReloadMsg struct {
		Items []string
	}

	// ErrMsg reports an error in the status bar.
	ErrMsg struct {
		Err error
	}
)

// Options selects what the [Model] paginates.
type Options struct {
	Source       paginator.Source
	PageSize     int
	ItemsPerPage int
	Page         int
}

// Model is the Bubble Tea model of the TUI.
type Model struct {
	err      error
	pg       *paginator.Paginator
	nav      *strip.Renderer
	items    *strip.Items
	theme    *theme.Theme
	kb       *KeyBinds
	help     *statusbar.HelpRenderer
	message  string
	width    int
	height   int
	mouse    bool
	numbers  bool
	showHelp bool
}

// NewProgram returns a new Tea program.
func NewProgram(cfg *Config, opts Options, progOpts ...tea.ProgramOption) (*tea.Program, error) {
	slog.Debug("starting pgn ui")

	m, err := NewModel(cfg, opts)
	if err != nil {
		return nil, err
	}

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	if m.mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	return tea.NewProgram(m, progOpts...), nil
}

// NewModel creates a new [Model] showing opts.Page.
func NewModel(cfg *Config, opts Options) (*Model, error) {
	if opts.Source == nil {
		return nil, ErrNoSource
	}

	if cfg == nil {
		cfg = NewConfig()
	}

	cfg.EnsureDefaults()

	err := cfg.KeyBinds.Validate()
	if err != nil {
		return nil, fmt.Errorf("key binds: %w", err)
	}

	t := theme.New(cfg.Theme)

	kbr := &keys.KeyBindRenderer{}
	kbr.AddColumn(cfg.KeyBinds.pageBinds()...)
	kbr.AddColumn(cfg.KeyBinds.buttonBinds()...)
	kbr.AddColumn(cfg.KeyBinds.commonBinds()...)

	m := &Model{
		nav:     strip.NewRenderer(t, 0),
		items:   strip.NewItems(t),
		theme:   t,
		kb:      cfg.KeyBinds,
		help:    statusbar.NewHelpRenderer(t, kbr),
		mouse:   *cfg.Mouse,
		numbers: *cfg.LineNumbers,
	}

	m.pg, err = paginator.New(paginator.Config{
		Items:        m.items,
		Nav:          m.nav,
		Source:       opts.Source,
		PageSize:     opts.PageSize,
		ItemsPerPage: opts.ItemsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("create paginator: %w", err)
	}

	if opts.Page > paginator.MinPage {
		m.pg.SetPage(opts.Page)
	}

	return m, nil
}

// Paginator returns the paginator driven by the model.
func (m *Model) Paginator() *paginator.Paginator {
	return m.pg
}

func (m *Model) Init() tea.Cmd {
	return nil
}

//nolint:ireturn // Must satisfy [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.SetWidth(msg.Width)

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.MouseMsg:
		m.handleMouse(msg)

	case ReloadMsg:
		m.err = m.pg.SetSource(source.Lines(msg.Items, nil))
		if m.err != nil {
			break
		}

		m.message = fmt.Sprintf("reloaded %d items", len(msg.Items))

		slog.Debug("reloaded items", slog.Int("count", len(msg.Items)))

	case ErrMsg:
		m.err = msg.Err
	}

	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	m.message = ""
	m.err = nil

	switch {
	case m.kb.Quit.Match(key):
		return tea.Quit
	case m.kb.Help.Match(key):
		m.showHelp = !m.showHelp
	case m.kb.Next.Match(key):
		m.pg.SetPage(m.pg.Page() + 1)
	case m.kb.Prev.Match(key):
		m.pg.SetPage(m.pg.Page() - 1)
	case m.kb.First.Match(key):
		m.pg.SetPage(paginator.MinPage)
	case m.kb.Last.Match(key):
		m.pg.SetPage(m.pg.MaxPage())
	case m.kb.NextWindow.Match(key):
		m.clickKind(paginator.KindNext)
	case m.kb.PrevWindow.Match(key):
		m.clickKind(paginator.KindPrev)
	case m.kb.FocusLeft.Match(key):
		m.nav.FocusPrev()
	case m.kb.FocusRight.Match(key):
		m.nav.FocusNext()
	case m.kb.Click.Match(key):
		if b, ok := m.nav.Focused(); ok {
			b.Click()
		}
	}

	return nil
}

func (m *Model) clickKind(kind paginator.ButtonKind) {
	for _, b := range m.nav.Buttons() {
		if b.Kind == kind {
			b.Click()

			return
		}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.mouse || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if msg.Y != m.stripRow() {
		return
	}

	if b, ok := m.nav.ButtonAt(msg.X); ok {
		b.Click()
	}
}

// stripRow is the screen row of the navigation strip, directly above the
// status bar.
func (m *Model) stripRow() int {
	return m.height - 2
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var help string
	if m.showHelp {
		help = m.help.Render(m.width)
	}

	bodyHeight := max(0, m.height-2)
	if help != "" {
		bodyHeight = max(0, bodyHeight-lipgloss.Height(help))
	}

	start, end := m.pg.ItemRange()

	var body string
	if m.numbers {
		body = m.items.ViewNumbered(m.width, bodyHeight, start)
	} else {
		body = m.items.View(m.width, bodyHeight)
	}

	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	var opts []statusbar.Opt
	switch {
	case m.err != nil:
		opts = append(opts, statusbar.WithError(m.err.Error()))
	case m.message != "":
		opts = append(opts, statusbar.WithMessage(m.message))
	}

	bar := statusbar.NewRenderer(m.theme, m.width, opts...).Render(statusbar.State{
		Page:    m.pg.Page(),
		MaxPage: m.pg.MaxPage(),
		Start:   start,
		End:     end,
		Total:   m.pg.Total(),
	})

	parts := []string{body}
	if help != "" {
		parts = append(parts, help)
	}

	parts = append(parts, m.nav.View(), bar)

	return strings.Join(parts, "\n")
}
