package checkin

import (
	"github.com/thebtf/moodline/internal/channel"
	"github.com/thebtf/moodline/pkg/models"
)

// State is a step of the per-message lifecycle.
type State int

const (
	StateReceived State = iota
	StateClassified
	StateExtracted
	StateFallenBack
	StatePersisted
	StateConfirmationAttempted
	StateResponded
)

var stateNames = map[State]string{
	StateReceived:              "received",
	StateClassified:            "classified",
	StateExtracted:             "extracted",
	StateFallenBack:            "fallen_back",
	StatePersisted:             "persisted",
	StateConfirmationAttempted: "confirmation_attempted",
	StateResponded:             "responded",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Run is the record of one message moving through the pipeline.
// It is owned by a single request and is not safe for concurrent use.
type Run struct {
	Message    models.InboundMessage
	Channel    channel.Channel
	Address    string
	Fields     *models.ExtractedFields
	ExtractErr error
	Entry      *models.Entry
	Dispatch   DispatchResult

	history []State
}

func newRun(msg models.InboundMessage) *Run {
	return &Run{Message: msg, history: []State{StateReceived}}
}

func (r *Run) transition(s State) {
	r.history = append(r.history, s)
}

// State returns the current state.
func (r *Run) State() State {
	return r.history[len(r.history)-1]
}

// History returns every state visited, in order.
func (r *Run) History() []State {
	out := make([]State, len(r.history))
	copy(out, r.history)
	return out
}

// FellBack reports whether the fallback record was used.
func (r *Run) FellBack() bool {
	return r.ExtractErr != nil
}

// Respond marks the response as written. Further calls are no-ops.
func (r *Run) Respond() {
	if r.State() != StateResponded {
		r.transition(StateResponded)
	}
}
