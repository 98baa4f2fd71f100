package worker

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/thebtf/moodline/docs" // Registers the OpenAPI document
)

func (s *Service) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("requestId", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("HTTP request")
	}))
	r.Use(s.metricsMiddleware)
	r.Use(jsonRecovery)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sms", func(r chi.Router) {
			r.With(twimlRecovery).Post("/webhook", s.handleWebhook)
			r.Post("/status-callback", s.handleStatusCallback)
			r.Post("/send-prompt", s.handleSendPrompt)
			r.Post("/test-inbound", s.handleTestInbound)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Get("/daily", s.handleDailyEntries)
			r.Get("/weekly", s.handleWeeklyEntries)
			r.Get("/{id}", s.handleGetEntry)
		})

		r.Get("/events", s.sseBroadcaster.HandleSSE)
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
	})

	r.Handle("/metrics", s.metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// metricsMiddleware records request counts and latency by route pattern.
func (s *Service) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.HTTPRequest(route, strconv.Itoa(status), time.Since(start))
	})
}
