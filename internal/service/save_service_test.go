package service

import (
	"context"
	"strings"
	"testing"

	"manor_backend/internal/game"
	"manor_backend/internal/repository"
	"manor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaveServiceForTest(t *testing.T) (*SaveService, *GameService) {
	t.Helper()
	db := newTestDB(t)
	sessionRepo := repository.NewSessionRepository(db)
	gameSvc := NewGameService(sessionRepo, repository.NewAttemptRepository(db), newFakeBinder())
	return NewSaveService(repository.NewSaveRepository(db), sessionRepo), gameSvc
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	saveSvc, gameSvc := newSaveServiceForTest(t)
	gameSvc.randIndex = func(n int) int { return 0 }

	session, err := gameSvc.StartGame("Alice", nil)
	require.NoError(t, err)
	id := session.SessionID

	_, err = gameSvc.SubmitAnswer(ctx, id, game.StageRoom1, Submission{Sequence: []string{"S", "G", "P", "V", "C"}})
	require.NoError(t, err)

	require.NoError(t, saveSvc.SaveGame(7, "before the observatory", id))

	// The live session keeps moving after the snapshot.
	_, err = gameSvc.SubmitAnswer(ctx, id, game.StageRoom2, Submission{Answer: "echo"})
	require.NoError(t, err)
	_, err = gameSvc.SubmitAnswer(ctx, id, game.StageRoom3, Submission{Answer: "32"})
	require.NoError(t, err)

	saves, err := saveSvc.ListSaves(7)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "room2", saves[0].CurrentRoom)

	restored, err := saveSvc.RestoreGame(7, saves[0].ID)
	require.NoError(t, err)
	assert.Equal(t, id, restored.SessionID)
	assert.Equal(t, "Alice", restored.PlayerName)
	assert.Equal(t, "room2", restored.CurrentRoom)

	state, err := gameSvc.State(id)
	require.NoError(t, err)
	assert.True(t, state.Room1Complete)
	assert.False(t, state.Room2Complete)
	assert.False(t, state.Room3Complete)
	assert.Equal(t, game.StageRoom2, state.CurrentRoom)
}

func TestSaveOverwritesSameName(t *testing.T) {
	ctx := context.Background()
	saveSvc, gameSvc := newSaveServiceForTest(t)

	session, err := gameSvc.StartGame("Alice", nil)
	require.NoError(t, err)
	id := session.SessionID

	require.NoError(t, saveSvc.SaveGame(7, "main", id))

	_, err = gameSvc.SubmitAnswer(ctx, id, game.StageRoom1, Submission{Sequence: []string{"S", "G", "P", "V", "C"}})
	require.NoError(t, err)
	require.NoError(t, saveSvc.SaveGame(7, "main", id))

	saves, err := saveSvc.ListSaves(7)
	require.NoError(t, err)
	require.Len(t, saves, 1, "overwriting a name must not grow the list")
	assert.Equal(t, "room2", saves[0].CurrentRoom)
}

func TestRestoreIsOwnerScoped(t *testing.T) {
	saveSvc, gameSvc := newSaveServiceForTest(t)

	session, err := gameSvc.StartGame("Alice", nil)
	require.NoError(t, err)
	require.NoError(t, saveSvc.SaveGame(7, "main", session.SessionID))

	saves, err := saveSvc.ListSaves(7)
	require.NoError(t, err)
	require.Len(t, saves, 1)

	_, err = saveSvc.RestoreGame(8, saves[0].ID)
	assert.ErrorIs(t, err, util.ErrSaveNotFound)
}

func TestDeleteSaveIsOwnerScoped(t *testing.T) {
	saveSvc, gameSvc := newSaveServiceForTest(t)

	session, err := gameSvc.StartGame("Alice", nil)
	require.NoError(t, err)
	require.NoError(t, saveSvc.SaveGame(7, "main", session.SessionID))

	saves, err := saveSvc.ListSaves(7)
	require.NoError(t, err)
	require.Len(t, saves, 1)

	deleted, err := saveSvc.DeleteSave(8, saves[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = saveSvc.DeleteSave(7, saves[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = saveSvc.RestoreGame(7, saves[0].ID)
	assert.ErrorIs(t, err, util.ErrSaveNotFound)
}

func TestQuickSaveNaming(t *testing.T) {
	saveSvc, gameSvc := newSaveServiceForTest(t)

	session, err := gameSvc.StartGame("Alice", nil)
	require.NoError(t, err)

	name, err := saveSvc.QuickSave(7, session.SessionID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "QuickSave_"))

	saves, err := saveSvc.ListSaves(7)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, name, saves[0].SaveName)
}

func TestSaveUnknownSession(t *testing.T) {
	saveSvc, _ := newSaveServiceForTest(t)

	err := saveSvc.SaveGame(7, "main", "missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
