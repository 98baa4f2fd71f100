package gorm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/thebtf/moodline/pkg/models"
)

// testEntryStore creates an EntryStore with a temporary database for testing.
func testEntryStore(t *testing.T) (*EntryStore, *Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gorm_entry_test_*")
	require.NoError(t, err)

	store, err := NewStore(Config{
		Path:     filepath.Join(tmpDir, "test.db"),
		MaxConns: 4,
		LogLevel: logger.Silent,
	})
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("NewStore failed: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}
	return NewEntryStore(store), store, cleanup
}

func ptr[T any](v T) *T { return &v }

func sampleNewEntry(ts time.Time) *models.NewEntry {
	return &models.NewEntry{
		Timestamp: ts,
		RawText:   "4, M, working from cafe, probably code some more",
		From:      "+15551234567",
		Channel:   "sms",
		Fields: models.ExtractedFields{
			Mood:          ptr(4),
			Energy:        ptr("M"),
			Doing:         ptr("working from cafe"),
			Intention:     ptr("code some more"),
			DoingCategory: ptr("work"),
			Location:      ptr("cafe"),
			Insights:      models.Insights{Observation: ptr("steady")},
			WordCount:     9,
		},
	}
}

func TestEntryStore_CreateEntry(t *testing.T) {
	entryStore, _, cleanup := testEntryStore(t)
	defer cleanup()

	ctx := context.Background()
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	entry, err := entryStore.CreateEntry(ctx, sampleNewEntry(ts))
	require.NoError(t, err)

	assert.Len(t, entry.ID, 36)
	assert.True(t, entry.Timestamp.Equal(ts))
	assert.NotEmpty(t, entry.CreatedAt)
	assert.Positive(t, entry.CreatedAtEpoch)
	assert.Nil(t, entry.ResponseTimeSeconds)

	got, err := entryStore.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entry.ID, got.ID)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.Equal(t, "+15551234567", got.From)
	assert.Equal(t, "sms", got.Channel)
	assert.Equal(t, 4, *got.Mood)
	assert.Equal(t, "M", *got.Energy)
	assert.Equal(t, "work", *got.DoingCategory)
	assert.Nil(t, got.SocialContext)
	require.NotNil(t, got.Insights.Observation)
	assert.Equal(t, "steady", *got.Insights.Observation)
	assert.Nil(t, got.ResponseTimeSeconds)
	assert.Equal(t, 9, got.WordCount)
}

func TestEntryStore_CreateEntry_FallbackShape(t *testing.T) {
	entryStore, _, cleanup := testEntryStore(t)
	defer cleanup()

	ctx := context.Background()
	entry, err := entryStore.CreateEntry(ctx, &models.NewEntry{
		Timestamp: time.Now(),
		RawText:   "meh",
		Channel:   "whatsapp",
		Fields:    models.ExtractedFields{WordCount: 1},
	})
	require.NoError(t, err)

	got, err := entryStore.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Empty(t, got.From)
	assert.Equal(t, "whatsapp", got.Channel)
	assert.Nil(t, got.Mood)
	assert.Nil(t, got.Energy)
	assert.Nil(t, got.DoingCategory)
	assert.True(t, got.Insights.IsEmpty())
	assert.Equal(t, 1, got.WordCount)
}

func TestEntryStore_CreateEntry_RejectsOutOfContractValues(t *testing.T) {
	entryStore, _, cleanup := testEntryStore(t)
	defer cleanup()

	ctx := context.Background()
	tests := []struct {
		name   string
		fields models.ExtractedFields
	}{
		{"mood above range", models.ExtractedFields{Mood: ptr(9)}},
		{"mood below range", models.ExtractedFields{Mood: ptr(0)}},
		{"unknown energy", models.ExtractedFields{Energy: ptr("X")}},
		{"unknown category", models.ExtractedFields{DoingCategory: ptr("napping")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entryStore.CreateEntry(ctx, &models.NewEntry{
				Timestamp: time.Now(),
				RawText:   "x",
				Channel:   "sms",
				Fields:    tt.fields,
			})
			assert.Error(t, err)
		})
	}

	count, err := entryStore.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEntryStore_GetEntryByID_NotFound(t *testing.T) {
	entryStore, _, cleanup := testEntryStore(t)
	defer cleanup()

	got, err := entryStore.GetEntryByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEntryStore_GetEntriesByRange(t *testing.T) {
	entryStore, _, cleanup := testEntryStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 5; h++ {
		_, err := entryStore.CreateEntry(ctx, sampleNewEntry(base.Add(time.Duration(h)*6*time.Hour)))
		require.NoError(t, err)
	}

	// [00:00, 18:00) on day one: hours 0, 6, 12.
	day := models.EntryQuery{From: base, To: base.Add(18 * time.Hour)}

	desc, err := entryStore.GetEntriesByRange(ctx, day)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.True(t, desc[0].Timestamp.Equal(base.Add(12*time.Hour)))
	assert.True(t, desc[2].Timestamp.Equal(base))

	day.Ascending = true
	asc, err := entryStore.GetEntriesByRange(ctx, day)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.True(t, asc[0].Timestamp.Equal(base))

	day.Limit = 2
	limited, err := entryStore.GetEntriesByRange(ctx, day)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	all, err := entryStore.GetEntriesByRange(ctx, models.EntryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestParseLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 50},
		{"limit=10", 10},
		{"limit=abc", 50},
		{"limit=-3", 50},
		{"limit=9999", 500},
	}
	for _, tt := range tests {
		r := httptestRequest("/api/entries?" + tt.query)
		assert.Equal(t, tt.want, ParseLimitParam(r, 50, 500), tt.query)
	}
}

func httptestRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}
