package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"manor_backend/internal/game"
	"manor_backend/internal/model"
	"manor_backend/internal/repository"
	"manor_backend/internal/util"
)

// PatternBinder holds the laboratory pattern bound to a session. Satisfied by
// repository.PatternRepository; tests substitute an in-memory fake.
type PatternBinder interface {
	Get(ctx context.Context, sessionID string) (int, bool, error)
	Bind(ctx context.Context, sessionID string, index int) (int, error)
	Clear(ctx context.Context, sessionID string) error
}

// GameService is the room sequencer: it gates access to rooms, dispatches
// answer validation, logs every attempt and advances the completion flags.
type GameService struct {
	SessionRepo *repository.SessionRepository
	AttemptRepo *repository.AttemptRepository
	Patterns    PatternBinder

	now       func() time.Time
	randIndex func(n int) int
}

func NewGameService(sessionRepo *repository.SessionRepository, attemptRepo *repository.AttemptRepository, patterns PatternBinder) *GameService {
	return &GameService{
		SessionRepo: sessionRepo,
		AttemptRepo: attemptRepo,
		Patterns:    patterns,
		now:         time.Now,
		randIndex:   rand.Intn,
	}
}

// GameState mirrors the snapshot payload shape: the four flags plus where the
// player currently is.
type GameState struct {
	SessionID     string     `json:"sessionId"`
	PlayerName    string     `json:"playerName"`
	Room1Complete bool       `json:"room1_complete"`
	Room2Complete bool       `json:"room2_complete"`
	Room3Complete bool       `json:"room3_complete"`
	FinalComplete bool       `json:"final_complete"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	TotalTime     string     `json:"total_time,omitempty"`
	CurrentRoom   game.Stage `json:"current_room"`
}

// RoomView is what the rendering layer needs to present a room. A non-empty
// Redirect means the room is locked and the client should route there instead.
type RoomView struct {
	Stage    game.Stage             `json:"stage"`
	Redirect game.Stage             `json:"redirect,omitempty"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
}

// Submission carries one answer. Exactly one of the fields is meaningful,
// depending on the room.
type Submission struct {
	Sequence    []string          `json:"sequence,omitempty"`
	Answer      string            `json:"answer,omitempty"`
	Assignments map[string]string `json:"assignments,omitempty"`
}

// SubmitResult reports a submission's outcome. Redirect is set instead of an
// outcome when the room was not yet reachable.
type SubmitResult struct {
	Correct    bool       `json:"correct"`
	Stage      game.Stage `json:"stage"`
	NextStage  game.Stage `json:"nextStage,omitempty"`
	Redirect   game.Stage `json:"redirect,omitempty"`
	Completed  bool       `json:"completed"`
	EscapeTime string     `json:"escapeTime,omitempty"`
}

// StartGame creates a fresh session with a new opaque token.
func (s *GameService) StartGame(playerName string, userID *uint) (*model.GameSession, error) {
	return s.SessionRepo.Create(model.GenerateSessionToken(), playerName, userID)
}

func (s *GameService) State(sessionID string) (*GameState, error) {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	return stateOf(session), nil
}

func stateOf(session *model.GameSession) *GameState {
	return &GameState{
		SessionID:     session.SessionID,
		PlayerName:    session.PlayerName,
		Room1Complete: session.Room1Complete,
		Room2Complete: session.Room2Complete,
		Room3Complete: session.Room3Complete,
		FinalComplete: session.FinalComplete,
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		TotalTime:     session.TotalTime,
		CurrentRoom:   game.CurrentStage(session),
	}
}

// RoomView gates the requested stage and assembles its puzzle payload. For
// the laboratory it binds one of the three patterns to the session on first
// view; the binding then stays fixed until the room is passed.
func (s *GameService) RoomView(ctx context.Context, sessionID string, stage game.Stage) (*RoomView, error) {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	if !game.CanAccess(session, stage) {
		return &RoomView{Stage: stage, Redirect: game.CurrentStage(session)}, nil
	}

	view := &RoomView{Stage: stage}
	switch stage {
	case game.StageRoom1:
		view.Payload = map[string]interface{}{"parts": game.WorkshopParts}
	case game.StageRoom2:
		view.Payload = map[string]interface{}{"riddle": game.ObservatoryRiddle}
	case game.StageRoom3:
		idx, err := s.boundPattern(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		pattern := game.LaboratoryPatterns[idx]
		view.Payload = map[string]interface{}{
			"sequence": pattern.Sequence,
			"hint":     pattern.Hint,
		}
	case game.StageFinal:
		view.Payload = map[string]interface{}{
			"clues": game.ControlClues,
			"keys":  game.ControlKeys,
		}
	case game.StageCompleted:
		view.Payload = map[string]interface{}{
			"escapeTime": session.TotalTime,
			"playerName": session.PlayerName,
		}
	}
	return view, nil
}

func (s *GameService) boundPattern(ctx context.Context, sessionID string) (int, error) {
	idx, found, err := s.Patterns.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if found {
		return idx, nil
	}
	return s.Patterns.Bind(ctx, sessionID, s.randIndex(len(game.LaboratoryPatterns)))
}

// SubmitAnswer validates one submission against the requested stage. Every
// reachable submission is logged, right or wrong; a correct answer advances
// the flag (idempotently) and, on the final room, stamps the escape time.
func (s *GameService) SubmitAnswer(ctx context.Context, sessionID string, stage game.Stage, sub Submission) (*SubmitResult, error) {
	if !isPlayable(stage) {
		return nil, util.ErrUnknownStage
	}

	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	if !game.CanAccess(session, stage) {
		return &SubmitResult{Stage: stage, Redirect: game.CurrentStage(session)}, nil
	}

	correct, raw, err := s.validate(ctx, sessionID, stage, sub)
	if err != nil {
		return nil, err
	}

	attempt := &model.PuzzleAttempt{
		SessionID:   sessionID,
		PlayerName:  session.PlayerName,
		UserID:      session.UserID,
		Room:        string(stage),
		Attempt:     raw,
		IsCorrect:   correct,
		AttemptedAt: s.now(),
	}
	if err := s.AttemptRepo.Append(attempt); err != nil {
		return nil, err
	}

	if !correct {
		return &SubmitResult{Correct: false, Stage: stage}, nil
	}

	if stage == game.StageFinal {
		endTime := s.now()
		elapsed := endTime.Sub(session.StartTime)
		escapeTime := util.FormatEscapeTime(elapsed)
		if err := s.SessionRepo.Complete(sessionID, endTime, escapeTime, int(elapsed.Seconds())); err != nil {
			return nil, err
		}
		return &SubmitResult{
			Correct:    true,
			Stage:      stage,
			NextStage:  game.StageCompleted,
			Completed:  true,
			EscapeTime: escapeTime,
		}, nil
	}

	if err := s.SessionRepo.SetStageComplete(sessionID, stage); err != nil {
		return nil, err
	}
	if stage == game.StageRoom3 {
		if err := s.Patterns.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
	}
	return &SubmitResult{Correct: true, Stage: stage, NextStage: game.NextStage(stage)}, nil
}

func (s *GameService) validate(ctx context.Context, sessionID string, stage game.Stage, sub Submission) (bool, string, error) {
	switch stage {
	case game.StageRoom1:
		raw, _ := json.Marshal(sub.Sequence)
		return game.ValidateWorkshop(sub.Sequence), string(raw), nil
	case game.StageRoom2:
		return game.ValidateObservatory(sub.Answer), sub.Answer, nil
	case game.StageRoom3:
		idx, err := s.boundPattern(ctx, sessionID)
		if err != nil {
			return false, "", err
		}
		return game.ValidateLaboratory(idx, sub.Answer), sub.Answer, nil
	case game.StageFinal:
		raw, _ := json.Marshal(sub.Assignments)
		return game.ValidateControl(sub.Assignments), string(raw), nil
	}
	return false, "", util.ErrUnknownStage
}

// isPlayable restricts submissions to the four playable stages.
func isPlayable(stage game.Stage) bool {
	switch stage {
	case game.StageRoom1, game.StageRoom2, game.StageRoom3, game.StageFinal:
		return true
	}
	return false
}

// Success returns the completion view, or the stage to redirect to when the
// run is not finished yet.
func (s *GameService) Success(sessionID string) (*GameState, error) {
	session, err := s.SessionRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.FinalComplete {
		return nil, util.ErrGameNotCompleted
	}
	return stateOf(session), nil
}

// Attempts exposes the audit trail for one session.
func (s *GameService) Attempts(sessionID string) ([]model.PuzzleAttempt, error) {
	return s.AttemptRepo.ListBySession(sessionID)
}
