package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// PatternRepository keeps the laboratory pattern chosen for a session. The
// binding is transient per-session state, not part of the session row, so it
// lives in Redis with a TTL and is cleared once the room is passed.
type PatternRepository struct {
	RDB *redis.Client
}

func NewPatternRepository(rdb *redis.Client) *PatternRepository {
	return &PatternRepository{RDB: rdb}
}

const patternTTL = 24 * time.Hour

func patternKey(sessionID string) string {
	return fmt.Sprintf("manor:lab_pattern:%s", sessionID)
}

// Get returns the bound pattern index, or found=false when none is set.
func (r *PatternRepository) Get(ctx context.Context, sessionID string) (int, bool, error) {
	val, err := r.RDB.Get(ctx, patternKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	idx, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// Bind stores the index only if no binding exists yet, so the pattern stays
// fixed for the remainder of the session's attempts at the room. The index
// actually in effect afterwards is returned.
func (r *PatternRepository) Bind(ctx context.Context, sessionID string, index int) (int, error) {
	ok, err := r.RDB.SetNX(ctx, patternKey(sessionID), strconv.Itoa(index), patternTTL).Result()
	if err != nil {
		return 0, err
	}
	if ok {
		return index, nil
	}
	existing, _, err := r.Get(ctx, sessionID)
	return existing, err
}

// Clear drops the binding after the room is passed.
func (r *PatternRepository) Clear(ctx context.Context, sessionID string) error {
	return r.RDB.Del(ctx, patternKey(sessionID)).Err()
}
