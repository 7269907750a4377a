package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cardswap/internal/models"

	"gorm.io/gorm"
)

// GormSubmissionStore - SubmissionStore поверх реляционной БД
type GormSubmissionStore struct {
	db *gorm.DB
}

func NewGormSubmissionStore(db *gorm.DB) *GormSubmissionStore {
	return &GormSubmissionStore{db: db}
}

// Migrate создает таблицу submissions
func (s *GormSubmissionStore) Migrate() error {
	return s.db.AutoMigrate(&models.Submission{})
}

func (s *GormSubmissionStore) Append(ctx context.Context, submission *models.Submission) error {
	if err := s.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// ListAll - порядок добавления: timestamp, затем id (оба растут со временем)
func (s *GormSubmissionStore) ListAll(ctx context.Context) ([]models.Submission, error) {
	submissions := []models.Submission{}
	if err := s.db.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// Export пишет тот же формат, что и JSON-хранилище
func (s *GormSubmissionStore) Export(ctx context.Context, w io.Writer) error {
	submissions, err := s.ListAll(ctx)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submissions: %w", err)
	}
	_, err = w.Write(raw)
	return err
}
