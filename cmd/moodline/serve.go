package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thebtf/moodline/internal/checkin"
	"github.com/thebtf/moodline/internal/config"
	gormdb "github.com/thebtf/moodline/internal/db/gorm"
	"github.com/thebtf/moodline/internal/extract"
	"github.com/thebtf/moodline/internal/logger"
	"github.com/thebtf/moodline/internal/metrics"
	"github.com/thebtf/moodline/internal/transport"
	"github.com/thebtf/moodline/internal/watcher"
	"github.com/thebtf/moodline/internal/worker"
	"github.com/thebtf/moodline/internal/worker/sse"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var watchSettings bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook and API worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), watchSettings)
		},
	}
	cmd.Flags().BoolVar(&watchSettings, "watch-settings", true, "Exit for restart when the settings file changes")
	return cmd
}

func runServe(parent context.Context, watchSettings bool) error {
	if err := config.EnsureAll(); err != nil {
		return fmt.Errorf("ensure data directory: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, "moodline")

	store, err := gormdb.NewStore(gormdb.Config{
		Driver:   cfg.DBDriver,
		Path:     cfg.DBPath,
		DSN:      cfg.DatabaseURL,
		MaxConns: cfg.MaxConns,
		LogLevel: gormlogger.Silent,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	log.Info().Str("driver", store.Driver()).Msg("Database ready")

	if cfg.ExtractionAPIKey() == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("No extraction API key configured, every check-in will use the fallback record")
	}

	sender := transport.New(transport.Config{
		BaseURL:    cfg.TwilioBaseURL,
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		Timeout:    cfg.SendTimeout,
	})
	if !sender.HasCredentials() {
		log.Warn().Msg("Twilio credentials missing, confirmations and prompts are disabled")
	}

	m := metrics.New()
	entries := gormdb.NewEntryStore(store)
	processor := checkin.NewProcessor(
		extract.NewClient(newCompleter(cfg), cfg.ExtractTimeout),
		checkin.NewPersister(entries, m),
		checkin.NewDispatcher(sender, cfg.TwilioPhoneNumber, m),
		m,
	)

	svc := worker.NewService(worker.Deps{
		Version:     Version,
		Config:      cfg,
		Processor:   processor,
		Entries:     entries,
		Sender:      sender,
		Store:       store,
		Broadcaster: sse.NewBroadcaster(),
		Metrics:     m,
	})

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watchSettings {
		settingsPath := config.SettingsPath()
		w, err := watcher.New(settingsPath, func() {
			log.Warn().Str("path", settingsPath).Msg("Settings file changed, exiting for restart")
			stop()
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create settings watcher")
		} else if err := w.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start settings watcher")
		} else {
			defer w.Stop()
			log.Info().Str("path", settingsPath).Msg("Settings file watcher started")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(svc.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down worker")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return svc.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newCompleter builds the completer for the configured provider.
func newCompleter(cfg *config.Config) extract.Completer {
	if cfg.Provider == config.ProviderOpenAI {
		return extract.NewOpenAICompleter(extract.OpenAIConfig{
			BaseURL:   cfg.OpenAIBaseURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.OpenAIModel,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.ExtractTimeout,
		})
	}
	return extract.NewAnthropicCompleter(extract.AnthropicConfig{
		BaseURL:   cfg.AnthropicBaseURL,
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.ExtractTimeout,
	})
}
