package model

import "time"

// PuzzleAttempt is one submitted answer and its outcome. Rows are append-only;
// nothing updates or deletes them.
// swagger:model PuzzleAttempt
type PuzzleAttempt struct {
	BaseModel
	SessionID   string    `gorm:"size:64;index;not null" json:"sessionId"`
	PlayerName  string    `gorm:"size:100;not null" json:"playerName"`
	UserID      *uint     `gorm:"index" json:"userId,omitempty"`
	Room        string    `gorm:"size:20;not null" json:"room"`
	Attempt     string    `gorm:"type:text;not null" json:"attempt"`
	IsCorrect   bool      `gorm:"default:false" json:"isCorrect"`
	AttemptedAt time.Time `gorm:"not null" json:"attemptedAt"`
}

func (PuzzleAttempt) TableName() string {
	return "puzzle_attempts"
}
