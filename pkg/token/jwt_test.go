package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type accessToken struct {
	ID       string
	Username string
}

func TestJWT(t *testing.T) {
	engine := NewEngine("secret", "lorekeeper")
	token, err := engine.Generate(time.Minute, accessToken{ID: "user1", Username: "mj"})
	require.NoError(t, err)

	var got accessToken
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, accessToken{ID: "user1", Username: "mj"}, got)
}

func TestJWTExpiration(t *testing.T) {
	engine := NewEngine("secret", "lorekeeper")
	token, err := engine.Generate(time.Nanosecond, "abc")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	var msg string
	require.Error(t, engine.Verify(token, &msg))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewEngine("secret", "lorekeeper").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.Error(t, NewEngine("other", "lorekeeper").Verify(token, &msg))
}

func TestJWTWrongIssuer(t *testing.T) {
	token, err := NewEngine("secret", "someone-else").Generate(time.Minute, "abc")
	require.NoError(t, err)

	var msg string
	require.ErrorIs(t, NewEngine("secret", "lorekeeper").Verify(token, &msg), ErrInvalidIssuer)
}
