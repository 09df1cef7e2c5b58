package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/macropower/pgn/pkg/server"
	"github.com/macropower/pgn/pkg/source"
)

const serveExamples = `  # Serve a file on the configured address:
  pgn serve ./app.log

  # Serve on all interfaces and reload when the file changes:
  pgn serve ./app.log --addr :8080 --watch

  # Serve stdin:
  seq 1000 | pgn serve`

type ServeArgs struct {
	*RootArgs
	ConfigArgs

	Path      string
	Addr      string
	Title     string
	RateLimit float64
}

func NewServeArgs(rootArgs *RootArgs) *ServeArgs {
	return &ServeArgs{
		RootArgs: rootArgs,
	}
}

func (sa *ServeArgs) AddFlags(cmd *cobra.Command) {
	sa.ConfigArgs.AddFlags(cmd)

	cmd.Flags().StringVar(&sa.Addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&sa.Title, "title", "", "HTML document title (overrides config)")
	cmd.Flags().Float64Var(&sa.RateLimit, "rate-limit", 0, "Maximum page requests per second, 0 for no limit")
}

func NewServeCmd(sa *ServeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "serve [path]",
		Short:             "Serve the pages as HTML over HTTP",
		Example:           serveExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: pathCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			sa.Path = "-"
			if len(args) > 0 {
				sa.Path = args[0]
			}

			return serve(cmd, sa)
		},
	}
	sa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// newServer loads the configuration and items and builds the [server.Server].
func newServer(cmd *cobra.Command, sa *ServeArgs) (*server.Server, *source.Loader, error) {
	cfg, err := sa.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if sa.Addr != "" {
		cfg.Serve.Addr = sa.Addr
	}
	if sa.Title != "" {
		cfg.Serve.Title = sa.Title
	}

	loader := source.NewLoader(sa.Path, source.WithStdin(cmd.InOrStdin()))

	items, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load items: %w", err)
	}

	srv, err := server.New(server.Config{
		Addr:         cfg.Serve.Addr,
		Title:        cfg.Serve.Title,
		PageSize:     cfg.Paginator.PageSize,
		ItemsPerPage: cfg.Paginator.ItemsPerPage,
		RateLimit:    sa.RateLimit,
	}, items)
	if err != nil {
		return nil, nil, fmt.Errorf("create server: %w", err)
	}

	return srv, loader, nil
}

func serve(cmd *cobra.Command, sa *ServeArgs) error {
	gin.SetMode(gin.ReleaseMode)

	srv, loader, err := newServer(cmd, sa)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sa.Watch {
		stopWatch, err := startWatcher(ctx, loader, func(evt source.Event) {
			switch e := evt.(type) {
			case source.EventReload:
				slog.Info("reloaded items", slog.Int("count", len(e.Items)))
				srv.SetItems(e.Items)
			case source.EventError:
				slog.Error("reload items", slog.Any("err", e.Err))
			}
		})
		if err != nil {
			return err
		}

		defer stopWatch()
	}

	err = srv.Run(ctx)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
