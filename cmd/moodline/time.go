package main

import (
	"fmt"
	"time"
)

// parseTimeFlag accepts RFC3339 or a bare YYYY-MM-DD (UTC midnight). An
// empty value is the zero time.
func parseTimeFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("--%s: expected RFC3339 or YYYY-MM-DD, got %q", name, value)
}
