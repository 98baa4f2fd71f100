package models

import "time"

// SendPromptRequest asks the worker to send the check-in question.
// Empty fields fall back to the configured recipient and SMS.
type SendPromptRequest struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

// SendPromptDebug carries transport diagnostics for a sent prompt.
type SendPromptDebug struct {
	Status        int    `json:"status"`
	To            string `json:"to"`
	MessageSID    string `json:"messageSid"`
	MessageStatus string `json:"messageStatus"`
	ErrorCode     *int   `json:"errorCode,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

// SendPromptResponse is the result of a send-prompt call.
type SendPromptResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorCode *int             `json:"errorCode,omitempty"`
	Debug     *SendPromptDebug `json:"debug,omitempty"`
}

// TestInboundRequest simulates an inbound message.
type TestInboundRequest struct {
	Message string `json:"message,omitempty"`
	From    string `json:"from,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// TestInboundEntry summarizes the entry a simulated message produced.
type TestInboundEntry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	RawText   string          `json:"raw_text"`
	Extracted ExtractedFields `json:"extracted"`
}

// TestInboundResponse is the result of a test-inbound call.
type TestInboundResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	TestMode bool              `json:"test_mode,omitempty"`
	Entry    *TestInboundEntry `json:"entry,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// EntriesResponse is a list of entries.
type EntriesResponse struct {
	Entries []*Entry `json:"entries"`
	Count   int      `json:"count"`
}

// DayStats summarizes one local day of entries. AvgMood is nil when no
// entry that day has a mood.
type DayStats struct {
	Date       string         `json:"date"`
	Count      int            `json:"count"`
	AvgMood    *float64       `json:"avg_mood"`
	EnergyDist map[string]int `json:"energy_distribution"`
}

// WeeklyResponse is seven local days of entries with per-day stats.
type WeeklyResponse struct {
	Start   string     `json:"start"`
	End     string     `json:"end"`
	Entries []*Entry   `json:"entries"`
	Days    []DayStats `json:"days"`
}

// HealthResponse reports worker liveness.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Database   string `json:"database"`
	SSEClients int    `json:"sse_clients"`
	Uptime     string `json:"uptime"`
}
