package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/pgn/api/v1beta1/configs"
	"github.com/macropower/pgn/pkg/config"
	"github.com/macropower/pgn/pkg/log"
	"github.com/macropower/pgn/pkg/markup"
	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/source"
	"github.com/macropower/pgn/pkg/ui"
	"github.com/macropower/pgn/pkg/ui/theme"
)

const (
	cmdExamples = `  # Page through a file:
  pgn ./app.log

  # Page through stdin:
  journalctl -n 500 | pgn

  # Watch for changes and reload:
  pgn ./app.log --watch

  # Print page 3 as HTML (disables TUI):
  pgn ./app.log --page 3 --format html > page3.html

  # Serve the pages over HTTP:
  pgn serve ./app.log --addr :8080`

	logBufferSize = 100
)

// Output formats used when stdout is not a terminal.
const (
	FormatText = "text"
	FormatHTML = "html"
)

var (
	ErrInvalidFormat = errors.New("invalid format")

	AllFormats = []string{FormatText, FormatHTML}
)

// ConfigArgs are the flags shared by commands that read the configuration
// file and the item source.
type ConfigArgs struct {
	ConfigPath   string
	PageSize     int
	ItemsPerPage int
	Watch        bool
}

func (ca *ConfigArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ca.ConfigPath, "config", "", "Path to the pgn configuration file")
	cmd.Flags().IntVar(&ca.PageSize, "page-size", 0, "Number of page buttons in the navigation window (overrides config)")
	cmd.Flags().IntVar(&ca.ItemsPerPage, "items-per-page", 0, "Number of items on each page (overrides config)")
	cmd.Flags().BoolVarP(&ca.Watch, "watch", "w", false, "Watch the input file for changes and reload")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func (ca *ConfigArgs) configPath() string {
	if ca.ConfigPath != "" {
		return ca.ConfigPath
	}

	return configs.GetPath()
}

// loadConfig reads the configuration file and applies flag overrides. Flags
// only override the file when set to a positive value.
func (ca *ConfigArgs) loadConfig() (*configs.Config, error) {
	path := ca.configPath()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	if ca.PageSize > 0 {
		cfg.Paginator.PageSize = ca.PageSize
	}
	if ca.ItemsPerPage > 0 {
		cfg.Paginator.ItemsPerPage = ca.ItemsPerPage
	}

	return cfg, nil
}

type RunArgs struct {
	*RootArgs
	ConfigArgs

	Path        string
	Format      string
	Page        int
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	ra.ConfigArgs.AddFlags(cmd)

	cmd.Flags().IntVar(&ra.Page, "page", paginator.MinPage, "Page to show first")
	cmd.Flags().StringVar(&ra.Format, "format", FormatText,
		fmt.Sprintf("Output format when stdout is not a terminal, one of: %s", AllFormats))
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	must(cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run [path]",
		Short:             "Default command, can be used explicitly if path/command is ambiguous",
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: pathCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ra.Path = "-"
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func pathCompletion(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	return nil, cobra.ShellCompDirectiveNoFileComp
}

func run(cmd *cobra.Command, rc *RunArgs) error {
	if !slices.Contains(AllFormats, rc.Format) {
		return fmt.Errorf("%w: %q, must be one of: %s", ErrInvalidFormat, rc.Format, strings.Join(AllFormats, ", "))
	}

	configPath := rc.configPath()

	err := configs.WriteDefault(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}
	if rc.WriteConfig {
		// Exit early after writing the default config.
		// Also, if there was an error, it should be fatal.
		return err
	}

	cfg, err := rc.loadConfig()
	if err != nil {
		return err
	}

	if rc.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		return showConfig(cmd.OutOrStdout(), cfg)
	}

	loader := source.NewLoader(rc.Path, source.WithStdin(cmd.InOrStdin()))

	items, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	slog.Debug("loaded items",
		slog.String("path", loader.Path()),
		slog.Int("count", len(items)),
	)

	// If stdout is not a terminal, print the requested page.
	if !isTerminal(cmd.OutOrStdout()) {
		return writePage(cmd.OutOrStdout(), cfg, rc.Format, rc.Page, items)
	}

	logBuf := log.NewBuffer(logBufferSize)
	logHandler, err := log.CreateHandlerWithStrings(logBuf, rc.LogLevel, rc.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))

	err = runUI(cmd.Context(), cfg, ui.Options{
		Source:       source.Lines(items, nil),
		PageSize:     cfg.Paginator.PageSize,
		ItemsPerPage: cfg.Paginator.ItemsPerPage,
		Page:         rc.Page,
	}, loader, rc.Watch)
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// writePage renders one page of items to w in the given format.
func writePage(w io.Writer, cfg *configs.Config, format string, page int, items []string) error {
	switch format {
	case FormatHTML:
		p, err := markup.NewPage(markup.PageConfig{
			Source:       source.Lines(items, markup.Item),
			Title:        cfg.Serve.Title,
			PageSize:     cfg.Paginator.PageSize,
			ItemsPerPage: cfg.Paginator.ItemsPerPage,
		})
		if err != nil {
			return fmt.Errorf("create page: %w", err)
		}

		p.Paginator.SetPage(page)

		_, err = p.WriteTo(w)
		if err != nil {
			return fmt.Errorf("write html: %w", err)
		}

		return nil
	}

	var lines []string

	pg, err := paginator.New(paginator.Config{
		Items:        paginator.ItemSinkFunc(func(s []string) { lines = s }),
		Nav:          paginator.NavSinkFunc(func([]paginator.Button) {}),
		Source:       source.Lines(items, nil),
		PageSize:     cfg.Paginator.PageSize,
		ItemsPerPage: cfg.Paginator.ItemsPerPage,
	})
	if err != nil {
		return fmt.Errorf("create paginator: %w", err)
	}

	pg.SetPage(page)

	for _, line := range lines {
		_, err := fmt.Fprintln(w, line)
		if err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
	}

	return nil
}

// showConfig prints cfg as YAML, highlighted when w is a terminal.
func showConfig(w io.Writer, cfg *configs.Config) error {
	b, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if !isTerminal(w) {
		_, err = w.Write(b)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		return nil
	}

	it, err := lexers.Get("yaml").Tokenise(nil, string(b))
	if err != nil {
		return fmt.Errorf("tokenise config: %w", err)
	}

	err = formatters.TTY256.Format(w, theme.New(cfg.UI.Theme).ChromaStyle, it)
	if err != nil {
		return fmt.Errorf("format config: %w", err)
	}

	return nil
}

func flushLogs(w io.Writer, buf *log.Buffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Len()),
		slog.Int("max", buf.Cap()),
		slog.Bool("truncated", buf.Dropped()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

// runUI starts the UI program, forwarding reloads from the watcher.
func runUI(ctx context.Context, cfg *configs.Config, opts ui.Options, loader *source.Loader, watch bool) error {
	p, err := ui.NewProgram(cfg.UI, opts, tea.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	if watch {
		stop, err := startWatcher(ctx, loader, func(evt source.Event) {
			switch e := evt.(type) {
			case source.EventReload:
				p.Send(ui.ReloadMsg{Items: e.Items})
			case source.EventError:
				p.Send(ui.ErrMsg{Err: e.Err})
			}
		})
		if err != nil {
			return err
		}

		defer stop()
	}

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

// startWatcher runs a [source.Watcher] for loader, calling handle for every
// event. The returned function stops the watcher.
func startWatcher(ctx context.Context, loader *source.Loader, handle func(source.Event)) (func(), error) {
	w, err := source.NewWatcher(loader)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", loader.Path(), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan source.Event)
	w.Subscribe(ch)

	go w.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-ch:
				handle(evt)
			}
		}
	}()

	return func() {
		cancel()

		err := w.Close()
		if err != nil {
			slog.Warn("close watcher", slog.Any("err", err))
		}
	}, nil
}
