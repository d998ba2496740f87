package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	ts := TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "helmhub-test",
		Duration: time.Hour,
	}

	u := &User{
		ID:           "u1",
		Username:     "skipper",
		Email:        "skipper@example.com",
		TokenVersion: 3,
	}

	token, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "skipper", claims.Username)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "helmhub-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("right"), Issuer: "helmhub-test", Duration: time.Hour}
	token, _, err := ts.Sign(&User{ID: "u1"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("wrong"), Issuer: "helmhub-test", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("s"), Issuer: "helmhub-test", Duration: -time.Minute}
	token, _, err := ts.Sign(&User{ID: "u1"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}
