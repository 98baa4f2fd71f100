package checkin

import (
	"context"
	"fmt"

	"github.com/thebtf/moodline/internal/channel"
	"github.com/thebtf/moodline/internal/metrics"
	"github.com/thebtf/moodline/pkg/models"
)

// EntryWriter is the storage collaborator: create one record.
type EntryWriter interface {
	CreateEntry(ctx context.Context, entry *models.NewEntry) (*models.Entry, error)
}

// PersistenceError wraps a storage failure. It aborts the request.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist entry: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persister maps a processed message onto a stored entry.
type Persister struct {
	store   EntryWriter
	metrics *metrics.Metrics
}

// NewPersister creates a Persister. m may be nil.
func NewPersister(store EntryWriter, m *metrics.Metrics) *Persister {
	return &Persister{store: store, metrics: m}
}

// Save writes exactly one entry. Response time is always stored as NULL.
func (p *Persister) Save(ctx context.Context, msg models.InboundMessage, ch channel.Channel, address string, fields *models.ExtractedFields) (*models.Entry, error) {
	entry, err := p.store.CreateEntry(ctx, &models.NewEntry{
		Timestamp:           msg.ReceivedAt,
		RawText:             msg.Body,
		From:                address,
		Channel:             ch.String(),
		Fields:              *fields,
		ResponseTimeSeconds: nil,
	})
	if err != nil {
		p.metrics.EntryPersisted(metrics.OutcomeError)
		return nil, &PersistenceError{Err: err}
	}
	p.metrics.EntryPersisted(metrics.OutcomeOK)
	return entry, nil
}
