package gorm

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thebtf/moodline/pkg/models"
)

// Entry is the stored form of a check-in. Column constraints mirror the
// extraction contract; values outside it are rejected on insert.
type Entry struct {
	ID                  string          `gorm:"primaryKey;type:varchar(36)"`
	Timestamp           string          `gorm:"not null"`
	TimestampEpoch      int64           `gorm:"index:idx_entries_timestamp,sort:desc;not null"`
	RawText             string          `gorm:"type:text;not null"`
	From                sql.NullString  `gorm:"column:from_address;type:text;index"`
	Channel             string          `gorm:"type:varchar(16);check:channel IN ('sms', 'whatsapp');default:'sms';not null"`
	Mood                sql.NullInt64   `gorm:"check:mood BETWEEN 1 AND 5"`
	Energy              sql.NullString  `gorm:"type:varchar(1);check:energy IN ('L', 'M', 'H')"`
	Doing               sql.NullString  `gorm:"type:text"`
	Intention           sql.NullString  `gorm:"type:text"`
	DoingCategory       sql.NullString  `gorm:"type:varchar(16);check:doing_category IN ('work', 'social', 'rest', 'exercise', 'chores', 'transit')"`
	Location            sql.NullString  `gorm:"type:text"`
	SocialContext       sql.NullString  `gorm:"type:text"`
	Insights            models.Insights `gorm:"type:text"`
	ResponseTimeSeconds sql.NullFloat64
	WordCount           int    `gorm:"default:0;not null"`
	CreatedAt           string `gorm:"not null"`
	CreatedAtEpoch      int64  `gorm:"index:idx_entries_created,sort:desc;not null"`
}

func (Entry) TableName() string { return "entries" }

// BeforeCreate assigns identity and creation time.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now()
	if e.CreatedAtEpoch == 0 {
		e.CreatedAtEpoch = now.UnixMilli()
	}
	if e.CreatedAt == "" {
		e.CreatedAt = now.UTC().Format(time.RFC3339)
	}
	return nil
}

// Summary is a generated daily or weekly digest. Only the schema exists here.
type Summary struct {
	ID             int64          `gorm:"primaryKey;autoIncrement"`
	Date           string         `gorm:"type:varchar(10);uniqueIndex:idx_summaries_date_type,priority:1;not null"`
	Type           string         `gorm:"type:varchar(8);check:type IN ('daily', 'weekly');uniqueIndex:idx_summaries_date_type,priority:2;not null"`
	Content        sql.NullString `gorm:"type:text"`
	Metrics        sql.NullString `gorm:"type:text"` // JSON object
	CreatedAt      string         `gorm:"not null"`
	CreatedAtEpoch int64          `gorm:"not null"`
}

func (Summary) TableName() string { return "summaries" }

// BeforeCreate hook to ensure timestamps are set.
func (s *Summary) BeforeCreate(tx *gorm.DB) error {
	if s.CreatedAtEpoch == 0 {
		s.CreatedAtEpoch = time.Now().UnixMilli()
	}
	if s.CreatedAt == "" {
		s.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return nil
}
