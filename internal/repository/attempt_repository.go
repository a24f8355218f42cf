package repository

import (
	"time"

	"manor_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Append logs one submission. The table is append-only; duplicate content is
// expected and fine (players retry the same wrong answer).
func (r *AttemptRepository) Append(attempt *model.PuzzleAttempt) error {
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = time.Now()
	}
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) ListBySession(sessionID string) ([]model.PuzzleAttempt, error) {
	var attempts []model.PuzzleAttempt
	err := r.DB.Where("session_id = ?", sessionID).
		Order("attempted_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountBySession(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PuzzleAttempt{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
