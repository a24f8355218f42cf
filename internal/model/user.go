package model

import "time"

// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:100;unique;not null" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Email     string    `gorm:"size:100" json:"email"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	DisplayName string `gorm:"size:100" json:"displayName"`
	AvatarURL   string `gorm:"size:255" json:"avatarUrl"`
	Bio         string `gorm:"size:500" json:"bio"`
	Preferences string `gorm:"type:json" json:"preferences,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
