// Package server serves paginated items as HTML pages over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/macropower/pgn/pkg/log"
	"github.com/macropower/pgn/pkg/markup"
	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/source"
)

const (
	// DefaultCacheSize is the number of rendered pages kept in memory.
	DefaultCacheSize = 128

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var ErrInvalidPage = errors.New("invalid page")

// Config configures a [Server].
type Config struct {
	Addr         string
	Title        string
	PageSize     int
	ItemsPerPage int
	// RateLimit is the number of page requests per second. Zero disables
	// rate limiting.
	RateLimit float64
	// CacheSize is the number of rendered pages to cache. Values <= 0
	// select [DefaultCacheSize].
	CacheSize int
}

type cacheKey struct {
	generation uint64
	page       int
}

// Server renders one page of the current items per request. Items can be
// replaced at any time with [Server.SetItems].
type Server struct {
	cache      *lru.Cache[cacheKey, []byte]
	engine     *gin.Engine
	cfg        Config
	items      []string
	generation uint64
	mu         sync.RWMutex
}

// New creates a new [Server] serving items.
func New(cfg Config, items []string) (*Server, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}

	cache, err := lru.New[cacheKey, []byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}

	s := &Server{cache: cache, cfg: cfg, items: items}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), RequestID(), RequestLogger())

	pages := s.engine.Group("/")
	if cfg.RateLimit > 0 {
		pages.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))))
	}

	pages.GET("/", s.handlePage)
	s.engine.GET("/healthz", s.handleHealth)

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetItems replaces the items being served.
func (s *Server) SetItems(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
	s.generation++
}

func (s *Server) snapshot() ([]string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.items, s.generation
}

// Render returns the HTML document for page. Pages outside the valid range
// are clamped.
func (s *Server) Render(page int) ([]byte, int, error) {
	items, gen := s.snapshot()

	p, err := markup.NewPage(markup.PageConfig{
		Source:       source.Lines(items, markup.Item),
		Title:        s.cfg.Title,
		PageSize:     s.cfg.PageSize,
		ItemsPerPage: s.cfg.ItemsPerPage,
	})
	if err != nil {
		return nil, 0, err //nolint:wrapcheck // Already wrapped.
	}

	// Clamp first so the cache key is the page shown.
	page = paginator.Clamp(page, p.Paginator.MinPage(), p.Paginator.MaxPage())

	key := cacheKey{generation: gen, page: page}
	if b, ok := s.cache.Get(key); ok {
		return b, page, nil
	}

	p.Paginator.SetPage(page)

	var buf bytes.Buffer

	_, err = p.WriteTo(&buf)
	if err != nil {
		return nil, 0, fmt.Errorf("write document: %w", err)
	}

	s.cache.Add(key, buf.Bytes())

	return buf.Bytes(), page, nil
}

func (s *Server) handlePage(c *gin.Context) {
	page := 1

	if q := c.Query("page"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			_ = c.Error(fmt.Errorf("%w: %q", ErrInvalidPage, q))
			c.String(http.StatusBadRequest, "invalid page %q\n", q)

			return
		}

		page = n
	}

	b, shown, err := s.Render(page)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed\n")

		return
	}

	c.Header("X-Page", strconv.Itoa(shown))
	c.Data(http.StatusOK, "text/html; charset=utf-8", b)
}

func (s *Server) handleHealth(c *gin.Context) {
	items, _ := s.snapshot()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"items":  len(items),
	})
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	return s.Serve(ctx, lis)
}

// Serve is like [Server.Run], but accepts connections on lis.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	logger := log.WithContext(ctx)

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("serving", slog.String("addr", lis.Addr().String()))

		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)

	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
