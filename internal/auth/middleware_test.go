package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodGet, "/users/me", nil)
	require.NoError(t, err)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c.Request = req
	return c, rec
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"", "", false},
		{"Basic dXNlcjpwdw==", "", false},
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer   padded  ", "padded", true},
	}
	for _, tc := range cases {
		c, _ := testContext(t, tc.header)
		got, ok := bearerToken(c)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.want, got, tc.header)
	}
}

func TestAuthMiddlewareAcceptsSignedToken(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "helmhub", Duration: time.Hour}
	token, _, err := ts.Sign(&User{ID: "u1", Username: "skipper", Email: "s@x.org"})
	require.NoError(t, err)

	c, rec := testContext(t, "Bearer "+token)
	AuthMiddleware(ts, nil)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, rec.Code)

	claims := MustGetClaims(c)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "skipper", claims.Username)
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "helmhub", Duration: time.Hour}

	c, rec := testContext(t, "")
	AuthMiddleware(ts, nil)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := TokenService{Secret: []byte("other-secret"), Issuer: "helmhub", Duration: time.Hour}
	token, _, err := other.Sign(&User{ID: "u1"})
	require.NoError(t, err)

	c, rec = testContext(t, "Bearer "+token)
	AuthMiddleware(ts, nil)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, MustGetClaims(c))
}

func TestUsernamePattern(t *testing.T) {
	for _, ok := range []string{"skipper", "Jib_Trimmer", "sail-42", "abc"} {
		assert.True(t, usernameRe.MatchString(ok), ok)
	}
	for _, bad := range []string{"ab", "has space", "tilde~", "", "wayyyyyyyyyyyyyyyyyyyytoooooolong"} {
		assert.False(t, usernameRe.MatchString(bad), bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, validatePassword("longenough"))
	assert.NotEmpty(t, validatePassword("short"))
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	assert.NotEmpty(t, validatePassword(string(long)))
}
