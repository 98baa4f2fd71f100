package checkin

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/moodline/internal/channel"
	"github.com/thebtf/moodline/internal/metrics"
	"github.com/thebtf/moodline/internal/privacy"
	"github.com/thebtf/moodline/internal/transport"
)

// ConfirmationBody is the fixed reply sent after a check-in is stored.
const ConfirmationBody = "✓ Check-in recorded. Thanks!"

// MessageSender is the outbound transport collaborator.
type MessageSender interface {
	Send(ctx context.Context, msg transport.Message) (*transport.SendResult, error)
	HasCredentials() bool
}

// Skip reasons for a confirmation that was never attempted.
const (
	SkipNoCredentials = "missing transport credentials"
	SkipNoSender      = "sender number not configured"
	SkipNoRecipient   = "no recipient address"
)

// DispatchResult records what happened to a confirmation.
type DispatchResult struct {
	Attempted  bool
	Delivered  bool
	MessageSID string
	SkipReason string
	Err        error
}

// Dispatcher sends best-effort confirmation replies.
type Dispatcher struct {
	sender     MessageSender
	fromNumber string
	metrics    *metrics.Metrics
}

// NewDispatcher creates a Dispatcher replying from fromNumber. m may be nil.
func NewDispatcher(sender MessageSender, fromNumber string, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{sender: sender, fromNumber: fromNumber, metrics: m}
}

// SendConfirmation makes one delivery attempt. It never returns an error:
// failures are logged here and recorded in the result.
func (d *Dispatcher) SendConfirmation(ctx context.Context, to string, ch channel.Channel) DispatchResult {
	var res DispatchResult
	switch {
	case d.sender == nil || !d.sender.HasCredentials():
		res.SkipReason = SkipNoCredentials
	case channel.Normalize(d.fromNumber) == "":
		res.SkipReason = SkipNoSender
	case channel.Normalize(to) == "":
		res.SkipReason = SkipNoRecipient
	}
	if res.SkipReason != "" {
		log.Warn().Str("channel", ch.Label()).Str("reason", res.SkipReason).Msg("Confirmation not sent")
		d.metrics.Confirmation(metrics.OutcomeSkipped)
		return res
	}

	msg := transport.Message{
		From: channel.Format(d.fromNumber, ch),
		To:   channel.Format(to, ch),
		Body: ConfirmationBody,
	}

	res.Attempted = true
	sent, err := d.sender.Send(ctx, msg)
	if err != nil {
		res.Err = err
		ev := log.Warn().Err(err).Str("channel", ch.Label()).Str("to", privacy.MaskAddress(msg.To))
		var apiErr *transport.APIError
		if errors.As(err, &apiErr) {
			ev = ev.Int("status", apiErr.StatusCode).Int("code", apiErr.Code)
		}
		ev.Msg("Confirmation failed")
		d.metrics.Confirmation(metrics.OutcomeFailed)
		return res
	}

	res.Delivered = true
	res.MessageSID = sent.SID
	log.Info().
		Str("channel", ch.Label()).
		Str("to", privacy.MaskAddress(msg.To)).
		Str("sid", sent.SID).
		Str("status", sent.Status).
		Msg("Confirmation sent")
	d.metrics.Confirmation(metrics.OutcomeDelivered)
	return res
}
