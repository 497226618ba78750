package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"

    at, err := NewAccessToken(secret, 42, "ADMIN", 15)
    require.NoError(t, err)
    require.NotEmpty(t, at.Token)
    require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, time.Minute)

    tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    require.EqualValues(t, 42, claims["sub"])
    require.Equal(t, "ADMIN", claims["role"])
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "CUSTOMER", 5)
    require.NoError(t, err)

    _, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    require.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(7)
    require.NoError(t, err)
    require.Len(t, rt.Raw, 96)
    require.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), rt.Exp, time.Minute)

    other, err := NewRefreshToken(7)
    require.NoError(t, err)
    require.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
    h1 := HashRefreshRaw("some-token")
    h2 := HashRefreshRaw("some-token")
    require.Equal(t, h1, h2)
    require.Len(t, h1, 64)
    require.NotEqual(t, h1, HashRefreshRaw("other-token"))
}
