package repository

import (
	"testing"
	"time"

	"manor_backend/internal/game"
	"manor_backend/internal/model"
	"manor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateRejectsDuplicateID(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	first, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)
	assert.False(t, first.Room1Complete)
	assert.False(t, first.StartTime.IsZero())

	_, err = repo.Create("sess-1", "Bob", nil)
	assert.ErrorIs(t, err, util.ErrDuplicateSession)
}

func TestSessionFindBySessionID(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)

	found, err := repo.FindBySessionID("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.PlayerName)

	_, err = repo.FindBySessionID("missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSetStageCompleteIsIdempotent(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)

	require.NoError(t, repo.SetStageComplete("sess-1", game.StageRoom1))
	require.NoError(t, repo.SetStageComplete("sess-1", game.StageRoom1))

	session, err := repo.FindBySessionID("sess-1")
	require.NoError(t, err)
	assert.True(t, session.Room1Complete)
	assert.False(t, session.Room2Complete)
}

func TestSetStageCompleteRejectsNonPlayableStage(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)

	err = repo.SetStageComplete("sess-1", game.StageCompleted)
	assert.ErrorIs(t, err, util.ErrUnknownStage)
}

func TestCompleteStampsEndAndTotals(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)

	endTime := time.Now()
	require.NoError(t, repo.Complete("sess-1", endTime, "0:02:05", 125))

	session, err := repo.FindBySessionID("sess-1")
	require.NoError(t, err)
	assert.True(t, session.FinalComplete)
	require.NotNil(t, session.EndTime)
	assert.Equal(t, "0:02:05", session.TotalTime)
	require.NotNil(t, session.TotalSeconds)
	assert.Equal(t, 125, *session.TotalSeconds)
}

func TestRestoreFlagsOverwritesInPlace(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Create("sess-1", "Alice", nil)
	require.NoError(t, err)
	require.NoError(t, repo.SetStageComplete("sess-1", game.StageRoom1))
	require.NoError(t, repo.SetStageComplete("sess-1", game.StageRoom2))

	savedStart := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
	require.NoError(t, repo.RestoreFlags("sess-1", true, false, false, false, savedStart))

	session, err := repo.FindBySessionID("sess-1")
	require.NoError(t, err)
	assert.True(t, session.Room1Complete)
	assert.False(t, session.Room2Complete)
	assert.False(t, session.Room3Complete)
	assert.False(t, session.FinalComplete)
	assert.Equal(t, savedStart.Unix(), session.StartTime.Unix())
}

func TestRestoreFlagsMissingSession(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	err := repo.RestoreFlags("missing", true, false, false, false, time.Now())
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestLeaderboardOrdersByElapsedSeconds(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	seed := func(id, player string, seconds int, done bool) {
		session := &model.GameSession{
			SessionID:     id,
			PlayerName:    player,
			StartTime:     time.Now(),
			FinalComplete: done,
		}
		if done {
			session.TotalSeconds = &seconds
		}
		require.NoError(t, db.Create(session).Error)
	}

	seed("s-slow", "Slow", 300, true)
	seed("s-fast", "Fast", 90, true)
	seed("s-mid", "Mid", 180, true)
	seed("s-dnf", "DidNotFinish", 0, false)

	top, err := repo.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Fast", top[0].PlayerName)
	assert.Equal(t, "Mid", top[1].PlayerName)
	assert.Equal(t, "Slow", top[2].PlayerName)

	top, err = repo.Leaderboard(2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}
