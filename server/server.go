// Package server exposes a sliced tensor artifact over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sonnes/tensorview/core"
	"github.com/sonnes/tensorview/reader"
	htmlrender "github.com/sonnes/tensorview/render/html"
	jsonrender "github.com/sonnes/tensorview/render/json"
)

// Server serves one artifact. It holds no per-request state: every request
// reads the artifact from disk again.
type Server struct {
	// Reader decodes the artifact.
	Reader reader.Reader
	// File is the artifact path.
	File string
	// Slice selects the served values.
	Slice core.Slice
	// Origins lists the origins allowed to read responses. "*" allows any.
	Origins []string
	// Page renders the chart at the root path.
	Page *htmlrender.Renderer
	// Payload renders the /data body.
	Payload *jsonrender.Renderer
	// Logger receives request and error logs. Nil means log.Default().
	Logger *log.Logger
}

// New creates a Server for file with the default slice, a wildcard CORS
// policy and default renderers.
func New(r reader.Reader, file string) *Server {
	return &Server{
		Reader:  r,
		File:    file,
		Slice:   core.DefaultSlice,
		Origins: []string{"*"},
		Page:    htmlrender.New(),
		Payload: jsonrender.New(),
	}
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
		middleware.GetHead,
		s.allowOrigins(),
	)

	r.Get("/data", s.handleData)
	r.Get("/meta", s.handleMeta)
	r.Get("/", s.handlePage)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	s.logger().Info("serving", "addr", "http://"+addr, "file", s.File)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// allowOrigins applies the CORS policy. With a wildcard origin the header is
// sent on every response, including requests that carry no Origin header.
func (s *Server) allowOrigins() func(http.Handler) http.Handler {
	policy := cors.Handler(cors.Options{
		AllowedOrigins: s.Origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	wildcard := slices.Contains(s.Origins, "*")

	return func(next http.Handler) http.Handler {
		h := policy(next)
		if !wildcard {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			h.ServeHTTP(w, r)
		})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
