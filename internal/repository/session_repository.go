package repository

import (
	"errors"
	"time"

	"manor_backend/internal/game"
	"manor_backend/internal/model"
	"manor_backend/internal/util"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Create starts a fresh play-through: all flags false, StartTime now.
// A duplicate session id is rejected.
func (r *SessionRepository) Create(sessionID, playerName string, userID *uint) (*model.GameSession, error) {
	var count int64
	if err := r.DB.Model(&model.GameSession{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.ErrDuplicateSession
	}

	session := &model.GameSession{
		SessionID:  sessionID,
		PlayerName: playerName,
		UserID:     userID,
		StartTime:  time.Now(),
	}
	if err := r.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) FindBySessionID(sessionID string) (*model.GameSession, error) {
	var session model.GameSession
	err := r.DB.Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// stageColumn maps a stage to its fixed flag column. The closed switch keeps
// the update away from any string-built column name.
func stageColumn(stage game.Stage) (string, bool) {
	switch stage {
	case game.StageRoom1:
		return "room1_complete", true
	case game.StageRoom2:
		return "room2_complete", true
	case game.StageRoom3:
		return "room3_complete", true
	case game.StageFinal:
		return "final_complete", true
	}
	return "", false
}

// SetStageComplete marks one flag true. Idempotent: re-marking a set flag is
// a no-op single-row write.
func (r *SessionRepository) SetStageComplete(sessionID string, stage game.Stage) error {
	column, ok := stageColumn(stage)
	if !ok {
		return util.ErrUnknownStage
	}
	return r.DB.Model(&model.GameSession{}).
		Where("session_id = ?", sessionID).
		Update(column, true).
		Error
}

// Complete stamps the final flag, end time and elapsed totals in one write.
// Only the sequencer's final-stage success path calls this.
func (r *SessionRepository) Complete(sessionID string, endTime time.Time, totalTime string, totalSeconds int) error {
	return r.DB.Model(&model.GameSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"final_complete": true,
			"end_time":       endTime,
			"total_time":     totalTime,
			"total_seconds":  totalSeconds,
		}).Error
}

// RestoreFlags overwrites the session's flags and start time in place from a
// snapshot payload. This is the only path that moves a flag backwards.
func (r *SessionRepository) RestoreFlags(sessionID string, room1, room2, room3, final bool, startTime time.Time) error {
	result := r.DB.Model(&model.GameSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"room1_complete": room1,
			"room2_complete": room2,
			"room3_complete": room3,
			"final_complete": final,
			"start_time":     startTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSessionNotFound
	}
	return nil
}

// Leaderboard returns the fastest completed runs.
func (r *SessionRepository) Leaderboard(limit int) ([]model.GameSession, error) {
	var sessions []model.GameSession
	err := r.DB.Where("final_complete = ?", true).
		Order("total_seconds ASC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// AllPlayers returns every run, newest first, for the roster view.
func (r *SessionRepository) AllPlayers() ([]model.GameSession, error) {
	var sessions []model.GameSession
	err := r.DB.Order("start_time DESC").Find(&sessions).Error
	return sessions, err
}
