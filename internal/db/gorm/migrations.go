package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: check-in entries
		{
			ID: "001_entries",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Entry{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("entries")
			},
		},

		// Migration 002: daily/weekly summaries
		{
			ID: "002_summaries",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Summary{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("summaries")
			},
		},
	})

	return m.Migrate()
}
