// Package checkin runs the inbound check-in pipeline: classify, extract,
// persist, confirm.
package checkin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/thebtf/moodline/internal/channel"
	"github.com/thebtf/moodline/internal/extract"
	"github.com/thebtf/moodline/internal/metrics"
	"github.com/thebtf/moodline/internal/privacy"
	"github.com/thebtf/moodline/pkg/models"
)

// ErrEmptyMessage is returned for a message without a body.
var ErrEmptyMessage = errors.New("message body is empty")

var tracer = otel.Tracer("github.com/thebtf/moodline/internal/checkin")

// Extractor turns raw text into structured fields.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (*models.ExtractedFields, error)
}

// EntryListener is notified after an entry is stored.
type EntryListener func(entry *models.Entry)

// Options adjust a single Handle call.
type Options struct {
	SkipConfirmation bool
}

// Processor owns the per-message state machine.
type Processor struct {
	extractor  Extractor
	persister  *Persister
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	listeners  []EntryListener
	now        func() time.Time
}

// NewProcessor creates a Processor. m may be nil.
func NewProcessor(extractor Extractor, persister *Persister, dispatcher *Dispatcher, m *metrics.Metrics) *Processor {
	return &Processor{
		extractor:  extractor,
		persister:  persister,
		dispatcher: dispatcher,
		metrics:    m,
		now:        time.Now,
	}
}

// OnEntry registers a listener called synchronously for each stored entry.
func (p *Processor) OnEntry(fn EntryListener) {
	p.listeners = append(p.listeners, fn)
}

// Handle processes one inbound message.
//
// Extraction failures are recovered with the fallback record. A storage
// failure aborts before any confirmation is attempted. Confirmation failures
// are recorded on the Run and never returned.
func (p *Processor) Handle(ctx context.Context, msg models.InboundMessage, opts Options) (*Run, error) {
	ctx, span := tracer.Start(ctx, "checkin.Handle")
	defer span.End()

	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = p.now()
	}
	run := newRun(msg)

	if strings.TrimSpace(msg.Body) == "" {
		span.SetStatus(codes.Error, "empty body")
		return run, ErrEmptyMessage
	}

	run.Channel = channel.Classify(msg.RawAddress)
	run.Address = channel.Normalize(msg.RawAddress)
	run.transition(StateClassified)
	span.SetAttributes(attribute.String("checkin.channel", run.Channel.String()))
	p.metrics.MessageReceived(run.Channel.String())

	log.Info().
		Str("channel", run.Channel.Label()).
		Str("from", privacy.MaskAddress(run.Address)).
		Str("body", privacy.Preview(msg.Body, 80)).
		Msg("Check-in received")

	start := time.Now()
	fields, err := p.extractor.Extract(ctx, msg.Body)
	if err != nil {
		p.metrics.Extraction(metrics.OutcomeFallback, time.Since(start))
		log.Warn().Err(err).Str("channel", run.Channel.Label()).Msg("Extraction failed, storing fallback record")
		run.ExtractErr = err
		run.Fields = extract.Fallback(msg.Body)
		run.transition(StateFallenBack)
	} else {
		p.metrics.Extraction(metrics.OutcomeOK, time.Since(start))
		run.Fields = fields
		run.transition(StateExtracted)
	}
	span.SetAttributes(attribute.Bool("checkin.fallback", run.FellBack()))

	entry, err := p.persister.Save(ctx, msg, run.Channel, run.Address, run.Fields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		log.Error().Err(err).Str("channel", run.Channel.Label()).Msg("Failed to store entry")
		return run, err
	}
	run.Entry = entry
	run.transition(StatePersisted)
	log.Info().Str("id", entry.ID).Str("channel", run.Channel.Label()).Bool("fallback", run.FellBack()).Msg("Entry stored")

	for _, fn := range p.listeners {
		fn(entry)
	}

	if opts.SkipConfirmation {
		return run, nil
	}

	run.Dispatch = p.dispatcher.SendConfirmation(ctx, run.Address, run.Channel)
	run.transition(StateConfirmationAttempted)
	return run, nil
}
