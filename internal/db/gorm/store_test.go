package gorm

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm/logger"
)

func TestNewStore(t *testing.T) {
	// Create temporary directory for test database
	tmpDir, err := os.MkdirTemp("", "gorm_test_*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		Path:     filepath.Join(tmpDir, "test.db"),
		MaxConns: 4,
		LogLevel: logger.Silent,
	}

	store, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if store.Driver() != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", store.Driver())
	}

	// Verify WAL mode is enabled
	var journalMode string
	if err := store.DB.Raw("PRAGMA journal_mode").Scan(&journalMode).Error; err != nil {
		t.Fatalf("query journal_mode failed: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected WAL mode, got %q", journalMode)
	}

	for _, table := range []string{"entries", "summaries"} {
		if !store.DB.Migrator().HasTable(table) {
			t.Errorf("table %q does not exist", table)
		}
	}
}

func TestMigrationIdempotency(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "gorm_idempotency_*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		Path:     filepath.Join(tmpDir, "test.db"),
		LogLevel: logger.Silent,
	}

	store1, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore (first) failed: %v", err)
	}
	store1.Close()

	store2, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("NewStore (second) failed: %v", err)
	}
	defer store2.Close()

	var applied int64
	if err := store2.DB.Table("migrations").Count(&applied).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied migrations, got %d", applied)
	}
}

func TestNewStore_InvalidConfig(t *testing.T) {
	if _, err := NewStore(Config{Driver: "mysql"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := NewStore(Config{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for missing sqlite path")
	}
	if _, err := NewStore(Config{Driver: DriverPostgres}); err == nil {
		t.Error("expected error for missing postgres DSN")
	}
}

func TestApplySQLitePragmas_ClosedDB(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB.Close()

	err = applySQLitePragmas(sqlDB)
	if err == nil {
		t.Fatal("expected error on closed database")
	}
	if !strings.Contains(err.Error(), "set WAL mode") {
		t.Errorf("expected first pragma in error, got %v", err)
	}
}

func TestApplySQLitePragmas(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "pragmas.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(1)

	if err := applySQLitePragmas(sqlDB); err != nil {
		t.Fatalf("applySQLitePragmas: %v", err)
	}

	var timeout int
	if err := sqlDB.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("expected busy_timeout 5000, got %d", timeout)
	}
}
