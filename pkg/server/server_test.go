package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/macropower/pgn/pkg/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func lines(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("line %d", i+1)
	}

	return items
}

func newServer(t *testing.T, cfg server.Config, items []string) *server.Server {
	t.Helper()

	s, err := server.New(cfg, items)
	require.NoError(t, err)

	return s
}

func get(t *testing.T, h http.Handler, target string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestServer_Page(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		target   string
		wantPage string
		contains []string
		excludes []string
		status   int
	}{
		"default page": {
			target:   "/",
			status:   http.StatusOK,
			wantPage: "1",
			contains: []string{
				`<div class="item">line 1</div>`,
				`<div class="item">line 5</div>`,
				`<a class="pageItem active">1</a>`,
				`href="?page=4" id="next" data-page="4"`,
				`href="?page=9" id="lastNext" data-page="9"`,
			},
			excludes: []string{"line 6<", `id="firstPrev"`},
		},
		"middle page": {
			target:   "/?page=4",
			status:   http.StatusOK,
			wantPage: "4",
			contains: []string{
				`<div class="item">line 16</div>`,
				`<div class="item">line 20</div>`,
				`href="?page=1" id="firstPrev" data-page="1"`,
				`href="?page=3" id="prev" data-page="3"`,
				`<a class="pageItem active">4</a>`,
			},
		},
		"clamped high": {
			target:   "/?page=100",
			status:   http.StatusOK,
			wantPage: "9",
			contains: []string{
				`<div class="item">line 41</div>`,
				`<div class="item">line 42</div>`,
				`<a class="pageItem active">9</a>`,
			},
			excludes: []string{`id="lastNext"`},
		},
		"clamped low": {
			target:   "/?page=-3",
			status:   http.StatusOK,
			wantPage: "1",
			contains: []string{`<a class="pageItem active">1</a>`},
		},
		"not a number": {
			target: "/?page=two",
			status: http.StatusBadRequest,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newServer(t, server.Config{Title: "logs", PageSize: 3, ItemsPerPage: 5}, lines(42))
			rec := get(t, s.Handler(), tc.target)

			require.Equal(t, tc.status, rec.Code)

			if tc.status != http.StatusOK {
				return
			}

			assert.Equal(t, tc.wantPage, rec.Header().Get("X-Page"))
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

			body := rec.Body.String()
			assert.Contains(t, body, "<title>logs</title>")

			for _, want := range tc.contains {
				assert.Contains(t, body, want)
			}

			for _, exclude := range tc.excludes {
				assert.NotContains(t, body, exclude)
			}
		})
	}
}

func TestServer_EscapesItems(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{}, []string{`<script>alert("x")</script>`})
	rec := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestServer_SetItems(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{ItemsPerPage: 2}, []string{"old a", "old b"})

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "old a")

	s.SetItems([]string{"new a", "new b", "new c"})

	rec = get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new a")
	assert.NotContains(t, rec.Body.String(), "old a")

	rec = get(t, s.Handler(), "/?page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new c")
}

func TestServer_RenderCached(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{CacheSize: 1}, lines(30))

	first, page, err := s.Render(2)
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	second, page, err := s.Render(2)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, string(first), string(second))

	_, page, err = s.Render(0)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}

func TestServer_Empty(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{}, nil)
	rec := get(t, s.Handler(), "/?page=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Page"))
	assert.Contains(t, rec.Body.String(), `<a class="pageItem active">1</a>`)
	assert.NotContains(t, rec.Body.String(), `class="item"`)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{}, lines(7))
	rec := get(t, s.Handler(), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status string `json:"status"`
		Items  int    `json:"items"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 7, got.Items)
}

func TestServer_RequestID(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{}, lines(1))

	rec := get(t, s.Handler(), "/healthz", server.HeaderRequestID, "abc-123")
	assert.Equal(t, "abc-123", rec.Header().Get(server.HeaderRequestID))

	rec = get(t, s.Handler(), "/healthz")
	assert.Len(t, rec.Header().Get(server.HeaderRequestID), 36)
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{RateLimit: 1}, lines(1))

	codes := []int{}
	for range 3 {
		codes = append(codes, get(t, s.Handler(), "/").Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/healthz").Code)
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	s := newServer(t, server.Config{}, lines(3))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.Serve(ctx, lis)
	}()

	client := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   5 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+lis.Addr().String()+"/?page=1", http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "line 3"))

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
