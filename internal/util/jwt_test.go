package util

import (
	"testing"
	"time"

	"manor_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "alice"}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Username: "alice"}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	user := &model.User{Username: "alice"}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}
