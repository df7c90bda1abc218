package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

type Router struct {
	handler *Handler
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewRouter(handler *Handler, log *logger.Logger, metrics *metrics.Metrics) *Router {
	return &Router{
		handler: handler,
		log:     log,
		metrics: metrics,
	}
}

func (r *Router) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		duration := time.Since(start)
		path := routePattern(req)

		if path != "/metrics" {
			r.metrics.ObserveHTTPRequest(path, req.Method, ww.Status(), duration)
		}

		reqLog := r.log.With("request_id", middleware.GetReqID(req.Context()))
		reqLog.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"query", req.URL.RawQuery,
			"status", ww.Status(),
			"duration", duration,
			"remote_addr", req.RemoteAddr,
			"user_agent", req.UserAgent(),
		)
	})
}

// routePattern keeps metric label cardinality bounded to registered routes.
func routePattern(req *http.Request) string {
	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(r.loggingMiddleware)
	router.Use(middleware.Recoverer)

	router.Get("/", r.handler.IndexHandler)
	router.Post("/convert", r.handler.ConvertFragmentHandler)

	router.Route("/api/v1", func(api chi.Router) {
		api.Get("/convert", r.handler.ConvertCurrencyHandler)
		api.Get("/rates", r.handler.GetLatestRatesHandler)
		api.Delete("/rates/cache", r.handler.ClearRatesHandler)
		api.Get("/currencies", r.handler.GetCurrenciesHandler)
	})

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Method(http.MethodGet, "/metrics", r.metrics.Handler())

	return router
}
