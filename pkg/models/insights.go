package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// Insights holds the optional observations the extraction service may attach.
type Insights struct {
	NotableChange      *string `json:"notable_change,omitempty"`
	EnergyMoodMismatch *string `json:"energy_mood_mismatch,omitempty"`
	Observation        *string `json:"observation,omitempty"`
}

// IsEmpty reports whether no insight is set.
func (i Insights) IsEmpty() bool {
	return i.NotableChange == nil && i.EnergyMoodMismatch == nil && i.Observation == nil
}

// Value implements driver.Valuer. Insights are stored as a JSON object, "{}" when empty.
func (i Insights) Value() (driver.Value, error) {
	data, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (i *Insights) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*i = Insights{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("insights: unsupported scan type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*i = Insights{}
		return nil
	}
	var out Insights
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("insights: %w", err)
	}
	*i = out
	return nil
}
