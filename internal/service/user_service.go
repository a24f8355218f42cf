package service

import (
	"manor_backend/internal/model"
	"manor_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// ProfileView joins the account row with its profile for the profile page.
type ProfileView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CreatedAt   string `json:"createdAt"`
	LastLogin   string `json:"lastLogin"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.UserRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
		LastLogin:   user.LastLogin.Format("2006-01-02 15:04:05"),
	}, nil
}

type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Preferences string `json:"preferences"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) error {
	profile, err := s.UserRepo.GetProfile(userID)
	if err != nil {
		return err
	}
	if update.DisplayName != "" {
		profile.DisplayName = update.DisplayName
	}
	profile.Bio = update.Bio
	if update.Preferences != "" {
		profile.Preferences = update.Preferences
	}
	return s.UserRepo.UpdateProfile(profile)
}

func (s *UserService) SetAvatar(userID uint, avatarURL string) error {
	return s.UserRepo.UpdateAvatar(userID, avatarURL)
}

// Touch satisfies the activity middleware.
func (s *UserService) Touch(user *model.User) error {
	return s.UserRepo.UpdateLastSeen(user.ID)
}
