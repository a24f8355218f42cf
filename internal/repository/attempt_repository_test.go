package repository

import (
	"testing"
	"time"

	"manor_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptAppendAndListOrdered(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	base := time.Now().Add(-time.Minute)
	require.NoError(t, repo.Append(&model.PuzzleAttempt{
		SessionID: "sess-1", PlayerName: "Alice", Room: "room1",
		Attempt: `["G","S","P","V","C"]`, IsCorrect: false, AttemptedAt: base,
	}))
	require.NoError(t, repo.Append(&model.PuzzleAttempt{
		SessionID: "sess-1", PlayerName: "Alice", Room: "room1",
		Attempt: `["S","G","P","V","C"]`, IsCorrect: true, AttemptedAt: base.Add(10 * time.Second),
	}))
	require.NoError(t, repo.Append(&model.PuzzleAttempt{
		SessionID: "sess-2", PlayerName: "Bob", Room: "room1",
		Attempt: `[]`, IsCorrect: false, AttemptedAt: base,
	}))

	attempts, err := repo.ListBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.False(t, attempts[0].IsCorrect)
	assert.True(t, attempts[1].IsCorrect)

	count, err := repo.CountBySession("sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAttemptAppendDefaultsTimestamp(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	attempt := &model.PuzzleAttempt{SessionID: "sess-1", Room: "room2", Attempt: "wind"}
	require.NoError(t, repo.Append(attempt))
	assert.False(t, attempt.AttemptedAt.IsZero())
}
