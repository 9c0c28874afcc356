// Package server exposes the valuation pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stratfit/scenario-cli/internal/config"
	"github.com/stratfit/scenario-cli/internal/levers"
	"github.com/stratfit/scenario-cli/internal/simulate"
	"github.com/stratfit/scenario-cli/internal/store"
)

// Server wires the HTTP API over the simulation engine, lever analyzer,
// and run store.
type Server struct {
	cfg      config.Config
	store    store.Store
	engine   *simulate.Engine
	analyzer *levers.Analyzer
	limiter  *rate.Limiter
}

// New builds a Server. The store may be nil; run persistence endpoints
// then return 503.
func New(cfg config.Config, st store.Store) *Server {
	rps := cfg.Server.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.Server.RateLimitBurst
	if burst <= 0 {
		burst = int(rps) * 2
	}

	return &Server{
		cfg:    cfg,
		store:  st,
		engine: simulate.New(cfg.Simulation),
		analyzer: levers.NewAnalyzer(levers.DefaultLevers(), levers.Config{
			FocusFactor:         cfg.Levers.FocusFactor,
			HighImpactThreshold: cfg.Levers.HighImpactThreshold,
			ShortRunwayMonths:   levers.DefaultConfig().ShortRunwayMonths,
		}),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router assembles the chi route tree with middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/valuation", s.handleValuation)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/levers", s.handleLevers)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Delete("/runs/{id}", s.handleDeleteRun)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
