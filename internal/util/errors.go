package util

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("game session not found")
	ErrDuplicateSession   = errors.New("session id already exists")
	ErrSaveNotFound       = errors.New("saved game not found")
	ErrUnknownStage       = errors.New("unknown stage")
	ErrGameNotCompleted   = errors.New("game not completed")
)
