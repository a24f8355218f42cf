package model

import "time"

// SavedGame is a named, point-in-time copy of a session's progress owned by
// one account. GameData duplicates the completion flags rather than pointing
// at the live session row, so the snapshot stays restorable after the live
// session has moved on. Deletion flips IsActive; rows are never removed.
// swagger:model SavedGame
type SavedGame struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_saves_owner;not null" json:"userId"`
	SaveName    string    `gorm:"size:100;not null" json:"saveName"`
	SessionID   string    `gorm:"size:64;not null" json:"sessionId"`
	PlayerName  string    `gorm:"size:100;not null" json:"playerName"`
	CurrentRoom string    `gorm:"size:20;not null" json:"currentRoom"`
	GameData    string    `gorm:"type:json;not null" json:"-"`
	LastUpdated time.Time `gorm:"not null" json:"lastUpdated"`
	IsActive    bool      `gorm:"default:true;index:idx_saves_owner" json:"-"`
}

func (SavedGame) TableName() string {
	return "saved_games"
}
