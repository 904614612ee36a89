package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/fddl/log"
)

// ReloadPath is the Server-Sent Events stream announcing rebuilds.
const ReloadPath = "/__livereload"

// ReloadMessage is the event data sent after a successful rebuild.
const ReloadMessage = "reload"

const (
	indexFile       = "index.html"
	notFoundFile    = "404.html"
	shutdownTimeout = 5 * time.Second
)

// reloadScript reconnects on its own when the stream drops.
const reloadScript = `<script>
(function () {
  var source = new EventSource("` + ReloadPath + `");
  source.onmessage = function (e) {
    if (e.data === "` + ReloadMessage + `") {
      location.reload();
    }
  };
})();
</script>
`

// config is shared by [Server] and [Watcher].
type config struct {
	logger   log.Logger
	debounce time.Duration
}

// Option configures a [Server] or a [Watcher].
type Option func(*config)

// WithLogger sets the logger reporting requests, watch events and rebuilds.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDebounce sets how long a [Watcher] waits for changes to settle before
// rebuilding.
func WithDebounce(d time.Duration) Option {
	return func(c *config) { c.debounce = d }
}

func makeConfig(opts []Option) config {
	c := config{debounce: DefaultDebounce}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Server serves a generated site for local preview. HTML documents are
// served with a script that reloads the page whenever [Server.Reload] is
// called.
type Server struct {
	config

	root string
	hub  *Hub
	e    *echo.Echo
}

// New returns a Server for the files below root.
func New(root string, opts ...Option) *Server {
	s := &Server{
		config: makeConfig(opts),
		root:   root,
		hub:    NewHub(),
		e:      echo.New(),
	}

	s.e.HideBanner = true
	s.e.HidePort = true

	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == ReloadPath
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}

			s.logger.DebugContext(c.Request().Context(), "request", attrs...)

			return nil
		},
	}))

	s.e.Use(middleware.Recover())

	s.e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == ReloadPath
		},
	}))

	s.e.Use(noCache)

	s.e.GET(ReloadPath, s.events)
	s.e.GET("/*", s.static)

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.e }

// Hub returns the live-reload client set.
func (s *Server) Hub() *Hub { return s.hub }

// Reload tells every connected browser to reload.
func (s *Server) Reload() {
	s.logger.Debug("notifying browsers", slog.Int("clients", s.hub.Len()))
	s.hub.Broadcast(ReloadMessage)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ErrServe.With(slog.String("addr", addr)).Wrap(err)
	}

	if !IsLoopback(host) {
		s.logger.WarnContext(ctx, "development server is reachable from the network",
			slog.String("host", host))
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.logger.InfoContext(ctx, "serving site",
			slog.String("url", "http://"+addr),
			slog.String("root", s.root),
		)

		err := s.e.Start(addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return ErrServe.With(slog.String("addr", addr)).Wrap(err)
	})

	eg.Go(func() error {
		<-ctx.Done()

		// Streams end when their channels close; Shutdown waits for them.
		s.hub.Close()

		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return s.e.Shutdown(shutdown)
	})

	return eg.Wait()
}

// IsLoopback reports whether host only accepts local connections.
func IsLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}

	ip := net.ParseIP(host)

	return ip != nil && ip.IsLoopback()
}

func noCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		return next(c)
	}
}

// events streams reload messages until the client leaves or the hub closes.
func (s *Server) events(c echo.Context) error {
	w := c.Response()

	if _, ok := w.Writer.(http.Flusher); !ok {
		return ErrReload
	}

	h := w.Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	fmt.Fprint(w, ": connected\n\n")
	w.Flush()

	ctx := c.Request().Context()

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			fmt.Fprintf(w, "data: %s\n\n", msg)
			w.Flush()
		}
	}
}

// static serves the file named by the request path. Directories resolve to
// their index.html; missing files to the site's 404.html when it exists.
func (s *Server) static(c echo.Context) error {
	file, ok := s.resolve(c.Request().URL.Path)
	if !ok {
		return s.notFound(c)
	}

	if !isHTML(file) {
		return c.File(file)
	}

	return s.html(c, http.StatusOK, file)
}

func (s *Server) notFound(c echo.Context) error {
	file := filepath.Join(s.root, notFoundFile)
	if _, err := os.Stat(file); err != nil {
		return echo.ErrNotFound
	}

	return s.html(c, http.StatusNotFound, file)
}

func (s *Server) html(c echo.Context, code int, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return echo.ErrNotFound
	}

	return c.HTMLBlob(code, InjectReload(data))
}

// resolve maps a URL path to a regular file below the root.
func (s *Server) resolve(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")

	if name == "" || strings.HasSuffix(urlPath, "/") {
		name = path.Join(name, indexFile)
	}

	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false
	}

	file := filepath.Join(s.root, filepath.FromSlash(name))

	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, indexFile)
		info, err = os.Stat(file)
	}

	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return file, true
}

func isHTML(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))

	return ext == ".html" || ext == ".htm"
}

// InjectReload inserts the live-reload script before the first </body>, or
// appends it when the document has none.
func InjectReload(doc []byte) []byte {
	const tag = "</body>"

	i := indexASCIIFold(doc, tag)
	if i < 0 {
		return append(doc[:len(doc):len(doc)], reloadScript...)
	}

	out := make([]byte, 0, len(doc)+len(reloadScript))
	out = append(out, doc[:i]...)
	out = append(out, reloadScript...)

	return append(out, doc[i:]...)
}

// indexASCIIFold returns the byte offset of the first match of the ASCII
// string sub in b, ignoring ASCII case, or -1.
func indexASCIIFold(b []byte, sub string) int {
	for i := 0; i+len(sub) <= len(b); i++ {
		j := 0
		for ; j < len(sub); j++ {
			if lower(b[i+j]) != lower(sub[j]) {
				break
			}
		}

		if j == len(sub) {
			return i
		}
	}

	return -1
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}
