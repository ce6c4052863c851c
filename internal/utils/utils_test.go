package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	now := time.Now()
	tok, err := NewAdminToken("s3cret", "box-office", time.Hour, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), tok.Exp, time.Second)

	claims, err := ParseAdminToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, AdminRole, claims.Role)
	assert.Equal(t, "box-office", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAdminToken_Rejects(t *testing.T) {
	tok, err := NewAdminToken("s3cret", "box-office", time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseAdminToken("other", tok.Token)
	assert.Error(t, err)

	expired, err := NewAdminToken("s3cret", "box-office", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseAdminToken("s3cret", expired.Token)
	assert.Error(t, err)

	_, err = ParseAdminToken("s3cret", "garbage")
	assert.Error(t, err)
}

func TestNewAdminToken_EmptySecret(t *testing.T) {
	_, err := NewAdminToken("", "x", time.Minute, time.Now())
	assert.Error(t, err)
}

func TestSecretHashing(t *testing.T) {
	h, err := HashSecret("boleteria", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifySecret(h, "boleteria"))
	assert.False(t, VerifySecret(h, "wrong"))
}
