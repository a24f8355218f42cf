package model

import "time"

// GameSession is one play-through of the manor. The four completion flags only
// ever go false -> true (restore from a snapshot is the single exception) and
// EndTime is set exactly when FinalComplete is.
// swagger:model GameSession
type GameSession struct {
	BaseModel
	SessionID     string     `gorm:"size:64;uniqueIndex;not null" json:"sessionId"`
	PlayerName    string     `gorm:"size:100;not null" json:"playerName"`
	UserID        *uint      `gorm:"index" json:"userId,omitempty"`
	StartTime     time.Time  `gorm:"not null" json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	TotalTime     string     `gorm:"size:20" json:"totalTime,omitempty"`
	TotalSeconds  *int       `json:"totalSeconds,omitempty"`
	Room1Complete bool       `gorm:"default:false" json:"room1Complete"`
	Room2Complete bool       `gorm:"default:false" json:"room2Complete"`
	Room3Complete bool       `gorm:"default:false" json:"room3Complete"`
	FinalComplete bool       `gorm:"default:false" json:"finalComplete"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}
