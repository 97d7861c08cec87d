package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/database"
	"github.com/osse101/PackBattle_Go/internal/handler"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/metrics"
	"github.com/osse101/PackBattle_Go/internal/sse"
)

// Server is the HTTP front of the battle service
type Server struct {
	httpServer *http.Server
}

// Options configures NewServer
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	DBPool         database.Pool
	BattleService  battle.Service
	CatalogService catalog.Service
	// EventHub enables the live event stream when set
	EventHub       *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs outermost first.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	battles := handler.NewBattleHandler(opts.BattleService)
	boxes := handler.NewBoxHandler(opts.CatalogService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIdentityMiddleware)

		r.Route("/battles", func(r chi.Router) {
			r.Post("/", battles.HandleCreateBattle)
			r.Get("/", battles.HandleListBattles)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", battles.HandleGetBattle)
				r.Delete("/", battles.HandleDeleteBattle)
				r.Post("/join", battles.HandleJoinBattle)
				r.Post("/bots", battles.HandleAddBot)
				r.Post("/ready", battles.HandleSetReady)
				r.Post("/start", battles.HandleStartBattle)
			})
		})

		if opts.EventHub != nil {
			r.Get("/events", sse.Handler(opts.EventHub))
		}

		r.Route("/boxes", func(r chi.Router) {
			r.Get("/", boxes.HandleListBoxes)
			r.Get("/cache/stats", boxes.HandleCacheStats)
			r.Get("/{id}", boxes.HandleGetBox)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// loggingMiddleware assigns a request id, echoes it in X-Request-ID and
// logs start and completion with secrets redacted
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
		} else {
			out[k] = v
		}
	}
	return out
}

// Start serves until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
