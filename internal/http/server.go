package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"evault/internal/logging"
	"evault/internal/vault"
)

const (
	defaultMaxUploadBytes int64 = 200 << 20
	multipartMemory       int64 = 32 << 20
	shutdownTimeout             = 10 * time.Second
)

// Options tunes the HTTP surface.
type Options struct {
	MaxUploadBytes int64
	RateLimit      int // requests per minute per client IP; 0 disables
}

// Server exposes the vault over HTTP.
type Server struct {
	svc  vault.Service
	opts Options
}

// NewServer builds a Server around the vault service.
func NewServer(svc vault.Service, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{svc: svc, opts: opts}
}

// Router returns the configured HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
		}

		r.Route("/api/v1/files", func(r chi.Router) {
			r.Get("/", s.listFiles)
			r.Post("/", s.uploadFile)
			r.Get("/{id}", s.downloadFile)
			r.Delete("/{id}", s.deleteFile)
		})

		// form-based paths kept for older clients
		r.Post("/upload", s.uploadFile)
		r.Get("/download/{id}", s.downloadFile)
		r.Post("/delete/{id}", s.deleteFile)
	})

	return r
}

// StartHTTP listens and serves until the context is canceled.
func StartHTTP(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.L.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
