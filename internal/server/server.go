// Package server exposes the pattern analyzers over HTTP with the
// dashboard's response envelope.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/partsight/insight-cli/internal/analytics"
	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/store"
)

// Server serves the pattern-analysis API.
type Server struct {
	engine  *analytics.Engine
	source  store.FactSource
	cfg     config.ServerConfig
	limiter *rate.Limiter
}

// New creates a Server around an engine and its fact source.
func New(engine *analytics.Engine, source store.FactSource, cfg config.ServerConfig) *Server {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = int(rps) * 2
	}
	return &Server{
		engine:  engine,
		source:  source,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router builds the route tree with the middleware stack applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(s.rateLimit)

	origin := s.cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api/insurers", s.handleInsurers)

	r.Route("/api/patterns", func(r chi.Router) {
		r.Get("/summary", handle(s, s.engine.Summary))
		r.Get("/price-anomalies", handle(s, s.engine.PriceAnomalies))
		r.Get("/supplier-risk", handle(s, s.engine.SupplierRisk))
		r.Get("/delivery-prediction", handle(s, s.engine.DeliveryForecast))
		r.Get("/part-cooccurrence", handle(s, s.engine.PartAssociations))
		r.Get("/supplier-clusters", handle(s, s.engine.SupplierSegments))
		r.Get("/trends", handle(s, s.engine.Trends))
		r.Get("/automation-impact", handle(s, s.engine.AutomationImpact))
		r.Get("/cancellation-analysis", handle(s, s.engine.Cancellations))
		r.Get("/claim-complexity", handle(s, s.engine.ClaimComplexity))
		r.Get("/workshop-demand", handle(s, s.engine.WorkshopDemand))
		r.Get("/dashboard", handle(s, s.engine.Dashboard))
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	timeout := time.Duration(s.cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server: shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("server: listening", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the status code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		zap.L().Info("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", id),
		)
	})
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
