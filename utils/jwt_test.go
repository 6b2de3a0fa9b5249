package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAuthToken(t *testing.T) {
	token, err := GenerateAuthToken(42, RoleHost, "Somchai")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAuthToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, RoleHost, claims.Role)
	require.Equal(t, "Somchai", claims.Name)
	require.Equal(t, "villa-backend", claims.Issuer)
}

func TestGenerateAuthTokenRejectsUnknownRole(t *testing.T) {
	_, err := GenerateAuthToken(1, "superuser", "x")
	require.Error(t, err)
}

func TestParseAuthTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAuthToken("not.a.token")
	require.Error(t, err)
}
