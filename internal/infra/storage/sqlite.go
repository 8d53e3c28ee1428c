package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"options_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists snapshot rows to an embedded SQLite database. The
// option_snapshots table is append-only: rows are inserted in batches and
// never updated or deleted by the collector.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the database at path and migrates the schema.
func NewStorage(path string) (*Storage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.OptionSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// SaveSnapshots appends one batch of snapshot rows.
func (s *Storage) SaveSnapshots(rows []domain.OptionSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return &domain.PersistenceError{Op: "save snapshots", Err: err}
	}
	return nil
}

// MaxSnapshotIndex returns the largest persisted snapshot index, or 0 when
// the table is empty. Used once at startup to recover the high-water mark.
func (s *Storage) MaxSnapshotIndex() (uint64, error) {
	var maxIndex uint64
	err := s.db.Model(&domain.OptionSnapshot{}).
		Select("COALESCE(MAX(snapshot_index), 0)").
		Scan(&maxIndex).Error
	if err != nil {
		return 0, &domain.PersistenceError{Op: "max snapshot index", Err: err}
	}
	return maxIndex, nil
}

// SnapshotsByIndex returns all rows of one snapshot batch, for inspection
// and tests.
func (s *Storage) SnapshotsByIndex(index uint64) ([]domain.OptionSnapshot, error) {
	var rows []domain.OptionSnapshot
	err := s.db.Where("snapshot_index = ?", index).Find(&rows).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load snapshots", Err: err}
	}
	return rows, nil
}
