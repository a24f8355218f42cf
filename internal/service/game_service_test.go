package service

import (
	"context"
	"testing"
	"time"

	"manor_backend/internal/game"
	"manor_backend/internal/repository"
	"manor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinder is an in-memory PatternBinder with the same first-write-wins
// semantics as the Redis-backed one.
type fakeBinder struct {
	bound map[string]int
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bound: map[string]int{}}
}

func (f *fakeBinder) Get(_ context.Context, sessionID string) (int, bool, error) {
	idx, ok := f.bound[sessionID]
	return idx, ok, nil
}

func (f *fakeBinder) Bind(_ context.Context, sessionID string, index int) (int, error) {
	if idx, ok := f.bound[sessionID]; ok {
		return idx, nil
	}
	f.bound[sessionID] = index
	return index, nil
}

func (f *fakeBinder) Clear(_ context.Context, sessionID string) error {
	delete(f.bound, sessionID)
	return nil
}

func newGameServiceForTest(t *testing.T) (*GameService, *fakeBinder) {
	t.Helper()
	db := newTestDB(t)
	binder := newFakeBinder()
	svc := NewGameService(
		repository.NewSessionRepository(db),
		repository.NewAttemptRepository(db),
		binder,
	)
	return svc, binder
}

func controlSolution() map[string]string {
	return map[string]string{
		"red_system":   "plumber",
		"blue_system":  "electrician",
		"green_system": "mechanic",
		"alex_role":    "electrician",
		"sam_role":     "mechanic",
		"taylor_role":  "plumber",
	}
}

func TestFullPlaythrough(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGameServiceForTest(t)
	svc.randIndex = func(n int) int { return 0 }

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionID)
	id := session.SessionID

	svc.now = func() time.Time { return session.StartTime.Add(125*time.Second + 500*time.Millisecond) }

	r1, err := svc.SubmitAnswer(ctx, id, game.StageRoom1, Submission{Sequence: []string{"S", "G", "P", "V", "C"}})
	require.NoError(t, err)
	assert.True(t, r1.Correct)
	assert.Equal(t, game.StageRoom2, r1.NextStage)

	r2, err := svc.SubmitAnswer(ctx, id, game.StageRoom2, Submission{Answer: " Echo "})
	require.NoError(t, err)
	assert.True(t, r2.Correct)
	assert.Equal(t, game.StageRoom3, r2.NextStage)

	// Pattern 0 answers "32".
	r3, err := svc.SubmitAnswer(ctx, id, game.StageRoom3, Submission{Answer: "32"})
	require.NoError(t, err)
	assert.True(t, r3.Correct)
	assert.Equal(t, game.StageFinal, r3.NextStage)

	final, err := svc.SubmitAnswer(ctx, id, game.StageFinal, Submission{Assignments: controlSolution()})
	require.NoError(t, err)
	assert.True(t, final.Correct)
	assert.True(t, final.Completed)
	assert.Equal(t, "0:02:05", final.EscapeTime)

	state, err := svc.Success(id)
	require.NoError(t, err)
	assert.True(t, state.Room1Complete)
	assert.True(t, state.Room2Complete)
	assert.True(t, state.Room3Complete)
	assert.True(t, state.FinalComplete)
	assert.Equal(t, game.StageCompleted, state.CurrentRoom)
	assert.Equal(t, "0:02:05", state.TotalTime)

	attempts, err := svc.Attempts(id)
	require.NoError(t, err)
	assert.Len(t, attempts, 4)
	for _, a := range attempts {
		assert.True(t, a.IsCorrect)
	}
}

func TestLockedRoomRedirectsWithoutAudit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGameServiceForTest(t)

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(ctx, session.SessionID, game.StageRoom2, Submission{Answer: "echo"})
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, game.StageRoom1, result.Redirect)

	view, err := svc.RoomView(ctx, session.SessionID, game.StageFinal)
	require.NoError(t, err)
	assert.Equal(t, game.StageRoom1, view.Redirect)
	assert.Nil(t, view.Payload)

	attempts, err := svc.Attempts(session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, attempts, "a locked submission must not reach the audit trail")
}

func TestWrongAnswerIsLoggedAndDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGameServiceForTest(t)

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(ctx, session.SessionID, game.StageRoom1, Submission{Sequence: []string{"C", "V", "P", "G", "S"}})
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Empty(t, result.NextStage)

	state, err := svc.State(session.SessionID)
	require.NoError(t, err)
	assert.False(t, state.Room1Complete)
	assert.Equal(t, game.StageRoom1, state.CurrentRoom)

	attempts, err := svc.Attempts(session.SessionID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].IsCorrect)
	assert.Equal(t, "room1", attempts[0].Room)
	assert.Equal(t, `["C","V","P","G","S"]`, attempts[0].Attempt)
}

func TestLaboratoryBindingStaysFixedUntilPassed(t *testing.T) {
	ctx := context.Background()
	svc, binder := newGameServiceForTest(t)
	svc.randIndex = func(n int) int { return 1 } // pattern 1 answers "8"

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)
	id := session.SessionID

	_, err = svc.SubmitAnswer(ctx, id, game.StageRoom1, Submission{Sequence: []string{"S", "G", "P", "V", "C"}})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, id, game.StageRoom2, Submission{Answer: "echo"})
	require.NoError(t, err)

	view, err := svc.RoomView(ctx, id, game.StageRoom3)
	require.NoError(t, err)
	assert.Equal(t, game.LaboratoryPatterns[1].Sequence, view.Payload["sequence"])

	// A later random draw must not re-roll the binding.
	svc.randIndex = func(n int) int { return 2 }

	result, err := svc.SubmitAnswer(ctx, id, game.StageRoom3, Submission{Answer: "32"})
	require.NoError(t, err)
	assert.False(t, result.Correct, "another pattern's answer must fail against the bound one")

	result, err = svc.SubmitAnswer(ctx, id, game.StageRoom3, Submission{Answer: "8"})
	require.NoError(t, err)
	assert.True(t, result.Correct)

	_, found, err := binder.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found, "the binding is cleared once the room is passed")
}

func TestSubmitRejectsNonPlayableStage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGameServiceForTest(t)

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, session.SessionID, game.StageCompleted, Submission{})
	assert.ErrorIs(t, err, util.ErrUnknownStage)
}

func TestSuccessRequiresCompletion(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	session, err := svc.StartGame("Alice", nil)
	require.NoError(t, err)

	_, err = svc.Success(session.SessionID)
	assert.ErrorIs(t, err, util.ErrGameNotCompleted)

	_, err = svc.Success("missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestStateForUnknownSession(t *testing.T) {
	svc, _ := newGameServiceForTest(t)

	_, err := svc.State("missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
