package service

import (
	"encoding/json"
	"fmt"
	"time"

	"manor_backend/internal/game"
	"manor_backend/internal/model"
	"manor_backend/internal/repository"
)

// SaveService turns session progress into named snapshots and back. A
// snapshot is an independent point-in-time copy of the four flags plus the
// start time, so it restores correctly even after the live session has
// progressed further.
type SaveService struct {
	SaveRepo    *repository.SaveRepository
	SessionRepo *repository.SessionRepository
}

func NewSaveService(saveRepo *repository.SaveRepository, sessionRepo *repository.SessionRepository) *SaveService {
	return &SaveService{
		SaveRepo:    saveRepo,
		SessionRepo: sessionRepo,
	}
}

// gameData is the serialized snapshot payload. Field names match what the
// save rows have always stored.
type gameData struct {
	Room1Complete bool      `json:"room1_complete"`
	Room2Complete bool      `json:"room2_complete"`
	Room3Complete bool      `json:"room3_complete"`
	FinalComplete bool      `json:"final_complete"`
	StartTime     time.Time `json:"start_time"`
	CurrentRoom   string    `json:"current_room"`
}

// SaveSummary is one row of the saves list.
type SaveSummary struct {
	ID          uint      `json:"id"`
	SaveName    string    `json:"saveName"`
	CurrentRoom string    `json:"currentRoom"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RestoredGame tells the caller which session is now active and where to
// route the player.
type RestoredGame struct {
	SessionID   string `json:"sessionId"`
	PlayerName  string `json:"playerName"`
	SaveName    string `json:"saveName"`
	CurrentRoom string `json:"currentRoom"`
}

// SaveGame snapshots the session under the given name, overwriting an active
// save of the same name in place. An empty name gets a timestamped default.
func (s *SaveService) SaveGame(userID uint, saveName, sessionID string) error {
	if saveName == "" {
		saveName = fmt.Sprintf("Save_%s", time.Now().Format("2006-01-02 15:04"))
	}
	return s.snapshot(userID, saveName, sessionID)
}

// QuickSave is SaveGame with a clock-stamped name.
func (s *SaveService) QuickSave(userID uint, sessionID string) (string, error) {
	saveName := fmt.Sprintf("QuickSave_%s", time.Now().Format("15:04"))
	return saveName, s.snapshot(userID, saveName, sessionID)
}

func (s *SaveService) snapshot(userID uint, saveName, sessionID string) error {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return err
	}

	currentRoom := game.CurrentStage(session)
	payload, err := json.Marshal(gameData{
		Room1Complete: session.Room1Complete,
		Room2Complete: session.Room2Complete,
		Room3Complete: session.Room3Complete,
		FinalComplete: session.FinalComplete,
		StartTime:     session.StartTime,
		CurrentRoom:   string(currentRoom),
	})
	if err != nil {
		return err
	}

	return s.SaveRepo.Upsert(&model.SavedGame{
		UserID:      userID,
		SaveName:    saveName,
		SessionID:   session.SessionID,
		PlayerName:  session.PlayerName,
		CurrentRoom: string(currentRoom),
		GameData:    string(payload),
	})
}

// ListSaves returns the account's active saves, newest-updated first.
func (s *SaveService) ListSaves(userID uint) ([]SaveSummary, error) {
	saves, err := s.SaveRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]SaveSummary, 0, len(saves))
	for _, save := range saves {
		summaries = append(summaries, SaveSummary{
			ID:          save.ID,
			SaveName:    save.SaveName,
			CurrentRoom: save.CurrentRoom,
			CreatedAt:   save.CreatedAt,
			LastUpdated: save.LastUpdated,
		})
	}
	return summaries, nil
}

// RestoreGame overwrites the snapshot's session with the stored flags and
// start time, rebinding that session as the active one. The lookup is owner
// scoped; someone else's save id comes back as not found. The returned stage
// label is always one of the five canonical labels.
func (s *SaveService) RestoreGame(userID uint, saveID uint) (*RestoredGame, error) {
	save, err := s.SaveRepo.FindOwned(userID, saveID)
	if err != nil {
		return nil, err
	}

	var data gameData
	if err := json.Unmarshal([]byte(save.GameData), &data); err != nil {
		return nil, err
	}

	stage, err := game.ParseStage(save.CurrentRoom)
	if err != nil {
		return nil, err
	}

	if err := s.SessionRepo.RestoreFlags(save.SessionID,
		data.Room1Complete, data.Room2Complete, data.Room3Complete, data.FinalComplete,
		data.StartTime); err != nil {
		return nil, err
	}

	return &RestoredGame{
		SessionID:   save.SessionID,
		PlayerName:  save.PlayerName,
		SaveName:    save.SaveName,
		CurrentRoom: string(stage),
	}, nil
}

// DeleteSave soft-deletes, only when owned. False means nothing matched.
func (s *SaveService) DeleteSave(userID uint, saveID uint) (bool, error) {
	return s.SaveRepo.SoftDelete(userID, saveID)
}
