package repository

import (
	"time"

	"manor_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts the user together with a profile row carrying the username
// as initial display name, in one transaction.
func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &model.UserProfile{
			UserID:      user.ID,
			DisplayName: user.Username,
		}
		return tx.Create(profile).Error
	})
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) GetProfile(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *UserRepository) UpdateProfile(profile *model.UserProfile) error {
	return r.DB.Save(profile).Error
}

func (r *UserRepository) UpdateAvatar(userID uint, avatarURL string) error {
	return r.DB.Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", avatarURL).
		Error
}
