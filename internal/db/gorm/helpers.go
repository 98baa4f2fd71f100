package gorm

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/thebtf/moodline/pkg/models"
)

// nullString creates a sql.NullString from an optional string.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// sqlNullString creates a sql.NullString from a string; empty is NULL.
func sqlNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt64(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// toModelEntry converts the stored row to the domain type.
func toModelEntry(e *Entry) *models.Entry {
	ts, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		ts = time.UnixMilli(e.TimestampEpoch).UTC()
	}
	return &models.Entry{
		ID:                  e.ID,
		Timestamp:           ts,
		RawText:             e.RawText,
		From:                e.From.String,
		Channel:             e.Channel,
		Mood:                intPtr(e.Mood),
		Energy:              stringPtr(e.Energy),
		Doing:               stringPtr(e.Doing),
		Intention:           stringPtr(e.Intention),
		DoingCategory:       stringPtr(e.DoingCategory),
		Location:            stringPtr(e.Location),
		SocialContext:       stringPtr(e.SocialContext),
		Insights:            e.Insights,
		ResponseTimeSeconds: floatPtr(e.ResponseTimeSeconds),
		WordCount:           e.WordCount,
		CreatedAt:           e.CreatedAt,
		CreatedAtEpoch:      e.CreatedAtEpoch,
	}
}

// ParseLimitParam parses the "limit" query parameter from an HTTP request.
// Returns defaultLimit if the parameter is missing or invalid, and caps the
// result at maxLimit.
func ParseLimitParam(r *http.Request, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}
	return limit
}
