// Package server exposes metro rendering over HTTP.
//
// # Endpoints
//
//	POST /render?format=text|json|dot|svg&input=json|yaml|toml
//	GET  /healthz
//	GET  /version
//
// The request body of /render is a script. Optional query parameters
// collapse (stepwise or compact), no_root and detailed mirror the CLI
// flags. The response body is the artifact with a matching Content-Type;
// the X-Metro-Cache header reports whether it came from the cache. Every
// response carries the server's build in X-Metro-Version.
//
// Errors are JSON objects with an error code and message. Invalid query
// parameters answer 400; scripts that cannot be decoded or laid out answer
// 422.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/metro/pkg/buildinfo"
	metroerrors "github.com/matzehuels/metro/pkg/errors"
	"github.com/matzehuels/metro/pkg/observability"
	"github.com/matzehuels/metro/pkg/pipeline"
)

// DefaultMaxBodyBytes limits the size of a posted script.
const DefaultMaxBodyBytes = 1 << 20

// CacheHeader reports "hit" or "miss" for rendered artifacts.
const CacheHeader = "X-Metro-Cache"

// VersionHeader carries the server's build version.
const VersionHeader = "X-Metro-Version"

// Server renders scripts posted over HTTP.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a server around a pipeline runner. A nil logger uses the
// runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger, maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with routing and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader(VersionHeader, buildinfo.Get().Version))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(buildinfo.Get())
	})
	r.Post("/render", s.render)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	script, err := readBody(w, r, s.maxBody)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), script, opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if result.CacheHit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	w.Write(result.Artifacts[format])
}

// renderOptions reads and validates the query parameters.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Input:    q.Get("input"),
		Collapse: q.Get("collapse"),
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	var err error
	if opts.NoRoot, err = boolParam(q.Get("no_root"), "no_root"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed"), "detailed"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), "refresh"); err != nil {
		return opts, err
	}
	return opts, opts.ValidateAndSetDefaults()
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, metroerrors.New(metroerrors.ErrCodeInvalidInput, "%s: want a boolean, got %q", name, v)
	}
	return b, nil
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()
	return io.ReadAll(body)
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case metroerrors.IsContractViolation(err), metroerrors.IsInputError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := metroerrors.GetCode(err)
	if code == "" {
		code = metroerrors.ErrCodeInternal
	}
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		msg = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: string(code), Error: msg})
}

// logRequests logs every request and reports it to the server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			dur := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", dur,
				"request_id", middleware.GetReqID(r.Context()))
		}()
		next.ServeHTTP(ww, r)
	})
}
