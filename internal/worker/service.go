// Package worker provides the HTTP service for moodline.
package worker

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/moodline/internal/checkin"
	"github.com/thebtf/moodline/internal/config"
	"github.com/thebtf/moodline/internal/metrics"
	"github.com/thebtf/moodline/internal/worker/sse"
	"github.com/thebtf/moodline/pkg/models"
)

// EntryReader is the read side of entry storage.
type EntryReader interface {
	GetEntriesByRange(ctx context.Context, q models.EntryQuery) ([]*models.Entry, error)
	GetEntryByID(ctx context.Context, id string) (*models.Entry, error)
}

// PromptSender sends operator-initiated prompts.
type PromptSender interface {
	checkin.MessageSender
	AuthTokenLengthOK() bool
	AuthTokenLength() int
}

// Pinger reports storage liveness.
type Pinger interface {
	Ping() error
}

// Deps are the collaborators a Service is built from.
type Deps struct {
	Version     string
	Config      *config.Config
	Processor   *checkin.Processor
	Entries     EntryReader
	Sender      PromptSender
	Store       Pinger
	Broadcaster *sse.Broadcaster
	Metrics     *metrics.Metrics
}

// Service is the moodline HTTP worker.
type Service struct {
	version        string
	config         *config.Config
	processor      *checkin.Processor
	entries        EntryReader
	sender         PromptSender
	store          Pinger
	sseBroadcaster *sse.Broadcaster
	metrics        *metrics.Metrics
	location       *time.Location

	router    chi.Router
	server    *http.Server
	startTime time.Time
	ready     atomic.Bool
}

// NewService wires a Service and its routes. New entries are published to
// the SSE broadcaster.
func NewService(deps Deps) *Service {
	broadcaster := deps.Broadcaster
	if broadcaster == nil {
		broadcaster = sse.NewBroadcaster()
	}

	svc := &Service{
		version:        deps.Version,
		config:         deps.Config,
		processor:      deps.Processor,
		entries:        deps.Entries,
		sender:         deps.Sender,
		store:          deps.Store,
		sseBroadcaster: broadcaster,
		metrics:        deps.Metrics,
		location:       deps.Config.Location(),
		router:         chi.NewRouter(),
		startTime:      time.Now(),
	}

	if svc.processor != nil {
		svc.processor.OnEntry(broadcaster.PublishEntry)
	}

	svc.setupRoutes()
	svc.ready.Store(true)
	return svc
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address until Shutdown is called.
func (s *Service) Start() error {
	s.server = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Long enough for one extraction plus one confirmation send.
		WriteTimeout: s.config.ExtractTimeout + s.config.SendTimeout + 10*time.Second,
	}

	log.Info().Str("addr", s.server.Addr).Str("version", s.version).Msg("Worker listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Service) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
