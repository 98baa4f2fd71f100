package worker

import (
	"net/http"
	"runtime"
	"time"

	"github.com/thebtf/moodline/pkg/models"
)

// handleHealth reports readiness and storage reachability.
//
//	@Summary	Health check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	models.HealthResponse
//	@Failure	503	{object}	models.HealthResponse
//	@Router		/api/health [get]
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:     "ok",
		Version:    s.version,
		Database:   "ok",
		SSEClients: s.sseBroadcaster.ClientCount(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK

	if s.store != nil {
		if err := s.store.Ping(); err != nil {
			resp.Database = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	if !s.ready.Load() {
		resp.Status = "shutting_down"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

// handleVersion returns build information.
//
//	@Summary	Version
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api/version [get]
func (s *Service) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":   s.version,
		"goVersion": runtime.Version(),
	})
}
