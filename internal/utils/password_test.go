package utils

import (
    "testing"

    "golang.org/x/crypto/bcrypt"

    "github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
    require.NoError(t, err)
    require.NotEqual(t, "s3cret-pass", hash)

    require.True(t, VerifyPassword(hash, "s3cret-pass"))
    require.False(t, VerifyPassword(hash, "wrong-pass"))
    require.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}
