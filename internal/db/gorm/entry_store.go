package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/thebtf/moodline/pkg/models"
)

// MaxRangeLimit caps a single range query.
const MaxRangeLimit = 500

// EntryStore provides entry-related database operations using GORM.
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore creates a new entry store.
func NewEntryStore(store *Store) *EntryStore {
	return &EntryStore{db: store.DB}
}

// CreateEntry inserts one entry and returns it with identity and creation
// time assigned.
func (s *EntryStore) CreateEntry(ctx context.Context, in *models.NewEntry) (*models.Entry, error) {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	dbEntry := &Entry{
		Timestamp:           ts.Format(time.RFC3339Nano),
		TimestampEpoch:      ts.UnixMilli(),
		RawText:             in.RawText,
		From:                sqlNullString(in.From),
		Channel:             in.Channel,
		Mood:                nullInt64(in.Fields.Mood),
		Energy:              nullString(in.Fields.Energy),
		Doing:               nullString(in.Fields.Doing),
		Intention:           nullString(in.Fields.Intention),
		DoingCategory:       nullString(in.Fields.DoingCategory),
		Location:            nullString(in.Fields.Location),
		SocialContext:       nullString(in.Fields.SocialContext),
		Insights:            in.Fields.Insights,
		ResponseTimeSeconds: nullFloat64(in.ResponseTimeSeconds),
		WordCount:           in.Fields.WordCount,
	}
	if dbEntry.Channel == "" {
		dbEntry.Channel = "sms"
	}

	if err := s.db.WithContext(ctx).Create(dbEntry).Error; err != nil {
		return nil, err
	}
	return toModelEntry(dbEntry), nil
}

// GetEntryByID retrieves an entry by its ID. Returns nil if it does not exist.
func (s *EntryStore) GetEntryByID(ctx context.Context, id string) (*models.Entry, error) {
	var dbEntry Entry
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&dbEntry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toModelEntry(&dbEntry), nil
}

// GetEntriesByRange returns entries whose timestamp falls in the query window.
func (s *EntryStore) GetEntriesByRange(ctx context.Context, q models.EntryQuery) ([]*models.Entry, error) {
	limit := q.Limit
	if limit <= 0 || limit > MaxRangeLimit {
		limit = MaxRangeLimit
	}

	query := s.db.WithContext(ctx).Model(&Entry{})
	if !q.From.IsZero() {
		query = query.Where("timestamp_epoch >= ?", q.From.UnixMilli())
	}
	if !q.To.IsZero() {
		query = query.Where("timestamp_epoch < ?", q.To.UnixMilli())
	}
	if q.Ascending {
		query = query.Order("timestamp_epoch ASC, created_at_epoch ASC")
	} else {
		query = query.Order("timestamp_epoch DESC, created_at_epoch DESC")
	}

	var rows []Entry
	if err := query.Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*models.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toModelEntry(&rows[i]))
	}
	return entries, nil
}

// CountEntries returns the total number of stored entries.
func (s *EntryStore) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Entry{}).Count(&count).Error
	return count, err
}
