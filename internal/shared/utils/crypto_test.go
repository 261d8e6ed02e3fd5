package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("S3cret-eCMIS")
	require.NoError(t, err)
	require.NotEqual(t, "S3cret-eCMIS", hash)

	require.True(t, VerifyPassword("S3cret-eCMIS", hash))
	require.False(t, VerifyPassword("mauvais-mot-de-passe", hash))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	require.Error(t, ValidatePasswordStrength("court"))
	require.Error(t, ValidatePasswordStrength(strings.Repeat("a", 73)))
	require.NoError(t, ValidatePasswordStrength("S3cret-eCMIS"))
}
