package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/thebtf/moodline/pkg/models"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// Extraction failure stages.
const (
	StageComplete = "complete"
	StageParse    = "parse"
)

var tracer = otel.Tracer("github.com/thebtf/moodline/internal/extract")

// Completer is the language-model collaborator: prompt in, completion out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ExtractionError reports a failed extraction attempt.
type ExtractionError struct {
	Stage string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsTimeout reports whether the attempt ran out of time.
func (e *ExtractionError) IsTimeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Client runs the extraction contract against a Completer.
type Client struct {
	completer Completer
	timeout   time.Duration
}

// NewClient creates a Client. A non-positive timeout uses DefaultTimeout.
func NewClient(completer Completer, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{completer: completer, timeout: timeout}
}

// Extract makes exactly one completion attempt and parses the result.
// Every failure is returned as *ExtractionError; nothing is retried.
func (c *Client) Extract(ctx context.Context, rawText string) (*models.ExtractedFields, error) {
	ctx, span := tracer.Start(ctx, "extract.Extract")
	defer span.End()

	prompt := BuildPrompt(rawText)
	if n := CountTokens(prompt); n > 0 {
		span.SetAttributes(attribute.Int("extract.prompt_tokens", n))
		log.Debug().Int("promptTokens", n).Msg("Built extraction prompt")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	completion, err := c.completer.Complete(callCtx, prompt)
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, StageComplete)
		return nil, &ExtractionError{Stage: StageComplete, Err: err}
	}
	log.Debug().Dur("took", time.Since(start)).Int("completionLen", len(completion)).Msg("Completion received")

	fields, err := Parse(completion, rawText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, StageParse)
		return nil, &ExtractionError{Stage: StageParse, Err: err}
	}
	return fields, nil
}
