// Package store persists translation history in Postgres. Persistence
// is optional: callers skip the package entirely when no database is
// configured.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TranslationRecord is one completed translation request for one
// target language.
type TranslationRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SourceLanguage  string    `gorm:"size:8;index" json:"source_language"`
	TargetLanguage  string    `gorm:"size:8;index" json:"target_language"`
	SourceChars     int       `json:"source_chars"`
	TranslatedChars int       `json:"translated_chars"`
	Confidence      float64   `json:"confidence"`
	ModelUsed       string    `gorm:"size:64" json:"model_used"`
	Strategies      string    `gorm:"size:256" json:"strategies"`
	ChunksProcessed int       `json:"chunks_processed"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// Store wraps the history database.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open connects to Postgres and migrates the history schema.
func Open(databaseURL string, logger zerolog.Logger) (*Store, error) {
	dsn := strings.TrimSpace(databaseURL)
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&TranslationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate translation history: %w", err)
	}

	logger.Info().Msg("translation history store ready")
	return &Store{db: db, logger: logger}, nil
}

// Record appends one history row. Failures are logged, not returned:
// history must never fail a translation.
func (s *Store) Record(ctx context.Context, record TranslationRecord) {
	if s == nil || s.db == nil {
		return
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Warn().Err(err).
			Str("source", record.SourceLanguage).
			Str("target", record.TargetLanguage).
			Msg("record translation history failed")
	}
}

// Recent returns the newest history rows, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]TranslationRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	var records []TranslationRecord
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query translation history: %w", err)
	}
	return records, nil
}
