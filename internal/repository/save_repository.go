package repository

import (
	"errors"
	"time"

	"manor_backend/internal/model"
	"manor_backend/internal/util"

	"gorm.io/gorm"
)

type SaveRepository struct {
	DB *gorm.DB
}

func NewSaveRepository(db *gorm.DB) *SaveRepository {
	return &SaveRepository{DB: db}
}

// Upsert writes a snapshot. An active save with the same (owner, name) pair
// is overwritten in place; otherwise a new row is inserted. Either way there
// is at most one active snapshot per name.
func (r *SaveRepository) Upsert(save *model.SavedGame) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.SavedGame
		err := tx.Where("user_id = ? AND save_name = ? AND is_active = ?",
			save.UserID, save.SaveName, true).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			save.IsActive = true
			save.LastUpdated = time.Now()
			return tx.Create(save).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"session_id":   save.SessionID,
			"player_name":  save.PlayerName,
			"current_room": save.CurrentRoom,
			"game_data":    save.GameData,
			"last_updated": time.Now(),
		}).Error
	})
}

// FindOwned looks a snapshot up scoped to its owner. A save belonging to a
// different account is reported as not found, never leaked.
func (r *SaveRepository) FindOwned(userID uint, saveID uint) (*model.SavedGame, error) {
	var save model.SavedGame
	err := r.DB.Where("id = ? AND user_id = ? AND is_active = ?", saveID, userID, true).
		First(&save).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &save, nil
}

// ListActive returns the owner's active saves, newest-updated first.
func (r *SaveRepository) ListActive(userID uint) ([]model.SavedGame, error) {
	var saves []model.SavedGame
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_updated DESC").
		Find(&saves).Error
	return saves, err
}

// SoftDelete marks the save inactive, only if owned by userID. Returns false
// when nothing matched; that is an answer, not an error.
func (r *SaveRepository) SoftDelete(userID uint, saveID uint) (bool, error) {
	result := r.DB.Model(&model.SavedGame{}).
		Where("id = ? AND user_id = ? AND is_active = ?", saveID, userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
