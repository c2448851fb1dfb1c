// Package httpapi serves plans and their derived timeline geometry as JSON.
package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/tempo/internal/service"
)

// Services are the use cases the API exposes.
type Services struct {
	Products service.ProductService
	Plans    service.PlanService
	Phases   service.PhaseService
	Features service.FeatureService
	Timeline service.TimelineService
	Layout   service.LayoutService
}

type ServerConfig struct {
	// PixelsPerDay is used for timeline requests that do not pass ppd.
	PixelsPerDay float64
	Logger       *slog.Logger
}

type Server struct {
	svc Services
	cfg ServerConfig
	log *slog.Logger
}

func NewServer(svc Services, cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{svc: svc, cfg: cfg, log: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("POST /api/products", s.handleCreateProduct)
	mux.HandleFunc("PATCH /api/products/{id}", s.handleRenameProduct)
	mux.HandleFunc("DELETE /api/products/{id}", s.handleDeleteProduct)

	mux.HandleFunc("GET /api/plans", s.handleListPlans)
	mux.HandleFunc("POST /api/plans", s.handleCreatePlan)
	mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	mux.HandleFunc("PATCH /api/plans/{id}", s.handlePatchPlan)
	mux.HandleFunc("DELETE /api/plans/{id}", s.handleDeletePlan)

	mux.HandleFunc("GET /api/plans/{id}/phases", s.handleListPhases)
	mux.HandleFunc("POST /api/plans/{id}/phases", s.handleCreatePhase)
	mux.HandleFunc("GET /api/phases/{id}", s.handleGetPhase)
	mux.HandleFunc("PATCH /api/phases/{id}", s.handlePatchPhase)
	mux.HandleFunc("DELETE /api/phases/{id}", s.handleDeletePhase)
	mux.HandleFunc("POST /api/phases/{id}/shift", s.handleShiftPhase)
	mux.HandleFunc("POST /api/phases/{id}/resize", s.handleResizePhase)

	mux.HandleFunc("GET /api/plans/{id}/features", s.handleListFeatures)
	mux.HandleFunc("POST /api/plans/{id}/features", s.handleCreateFeature)
	mux.HandleFunc("PATCH /api/features/{id}", s.handlePatchFeature)
	mux.HandleFunc("DELETE /api/features/{id}", s.handleDeleteFeature)

	mux.HandleFunc("GET /api/plans/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/plans/{id}/layout", s.handleGetLayout)
	mux.HandleFunc("PUT /api/plans/{id}/layout", s.handlePutLayout)

	return s.withRequestLog(withSecurityHeaders(mux))
}

// ListenAndServe serves until ctx is cancelled. onListening, when set,
// receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, onListening func(net.Addr)) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if onListening != nil {
		onListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		}
		s.log.LogAttrs(r.Context(), level, "http_request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", time.Since(started).Milliseconds()),
		)
	})
}
