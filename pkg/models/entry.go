// Package models contains domain models for moodline.
package models

import (
	"time"
)

// Field values the extraction contract allows. The storage schema enforces
// them; the extraction client does not.
var (
	EnergyLevels    = []string{"L", "M", "H"}
	DoingCategories = []string{"work", "social", "rest", "exercise", "chores", "transit"}
)

// InboundMessage is a single check-in as received from the transport.
type InboundMessage struct {
	RawAddress string
	Body       string
	ReceivedAt time.Time
}

// ExtractedFields is the structured form of a check-in.
// Every optional field is nil when absent; WordCount is always set.
type ExtractedFields struct {
	Mood          *int     `json:"mood"`
	Energy        *string  `json:"energy"`
	Doing         *string  `json:"doing"`
	Intention     *string  `json:"intention"`
	DoingCategory *string  `json:"doing_category"`
	Location      *string  `json:"location"`
	SocialContext *string  `json:"social_context"`
	Insights      Insights `json:"insights"`
	WordCount     int      `json:"word_count"`
}

// NewEntry carries everything the storage layer needs to create an Entry.
// Identity and creation time are assigned by storage.
type NewEntry struct {
	Timestamp           time.Time
	RawText             string
	From                string
	Channel             string
	Fields              ExtractedFields
	ResponseTimeSeconds *float64
}

// Entry is one persisted check-in.
type Entry struct {
	ID                  string    `json:"id"`
	Timestamp           time.Time `json:"timestamp"`
	RawText             string    `json:"raw_text"`
	From                string    `json:"from,omitempty"`
	Channel             string    `json:"channel"`
	Mood                *int      `json:"mood"`
	Energy              *string   `json:"energy"`
	Doing               *string   `json:"doing"`
	Intention           *string   `json:"intention"`
	DoingCategory       *string   `json:"doing_category"`
	Location            *string   `json:"location"`
	SocialContext       *string   `json:"social_context"`
	Insights            Insights  `json:"insights"`
	ResponseTimeSeconds *float64  `json:"response_time_seconds"`
	WordCount           int       `json:"word_count"`
	CreatedAt           string    `json:"created_at"`
	CreatedAtEpoch      int64     `json:"created_at_epoch"`
}

// Fields returns the extracted portion of the entry.
func (e *Entry) Fields() ExtractedFields {
	return ExtractedFields{
		Mood:          e.Mood,
		Energy:        e.Energy,
		Doing:         e.Doing,
		Intention:     e.Intention,
		DoingCategory: e.DoingCategory,
		Location:      e.Location,
		SocialContext: e.SocialContext,
		Insights:      e.Insights,
		WordCount:     e.WordCount,
	}
}

// StatusEvent is a delivery-status callback from the outbound transport.
// It is logged only.
type StatusEvent struct {
	MessageSID   string
	Status       string
	ErrorCode    string
	ErrorMessage string
	To           string
	From         string
}

// EntryQuery selects entries by timestamp. From is inclusive and To is
// exclusive; a zero bound is open.
type EntryQuery struct {
	From      time.Time
	To        time.Time
	Ascending bool
	Limit     int
}
