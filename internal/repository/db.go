package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rutushah/To-do-application/internal/model"
)

// NewDB opens a SQLite database, runs migrations and seeds the status and
// category lookup tables.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "todo.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Status{}, &model.Category{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	if err := seedLookupTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedLookupTables inserts the fixed status vocabulary and the default
// category set. Existing rows are left untouched.
func seedLookupTables(db *gorm.DB) error {
	statuses := []model.Status{
		{StatusName: model.StatusReadyToPick, DisplayName: "Ready to Pick"},
		{StatusName: model.StatusInProgress, DisplayName: "In Progress"},
		{StatusName: model.StatusBlocked, DisplayName: "Blocked"},
		{StatusName: model.StatusCompleted, DisplayName: "Completed"},
		{StatusName: model.StatusDeleted, DisplayName: "Deleted"},
	}
	for _, s := range statuses {
		var row model.Status
		if err := db.Where("status_name = ?", s.StatusName).Attrs(s).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed status %s: %w", s.StatusName, err)
		}
	}

	categories := []model.Category{
		{CategoryName: "work", DisplayName: "Work"},
		{CategoryName: "leisure", DisplayName: "Leisure"},
		{CategoryName: "study", DisplayName: "Study"},
		{CategoryName: "health", DisplayName: "Health"},
	}
	for _, c := range categories {
		var row model.Category
		if err := db.Where("category_name = ?", c.CategoryName).Attrs(c).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", c.CategoryName, err)
		}
	}

	return nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
