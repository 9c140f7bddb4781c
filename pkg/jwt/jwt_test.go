package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "catalog")

	token, err := m.GenerateAccessToken("user-1", []string{RoleManager}, time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.HasAnyRole(RoleAdmin, RoleManager))
	assert.False(t, claims.HasAnyRole(RoleAdmin))
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", "")

	token, err := m.GenerateAccessToken("user-1", nil, -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsWrongSecretAndIssuer(t *testing.T) {
	issued, err := NewManager("other", "catalog").GenerateAccessToken("u", nil, time.Hour)
	require.NoError(t, err)
	_, err = NewManager("secret", "catalog").ValidateToken(issued)
	assert.Error(t, err)

	issued, err = NewManager("secret", "someone-else").GenerateAccessToken("u", nil, time.Hour)
	require.NoError(t, err)
	_, err = NewManager("secret", "catalog").ValidateToken(issued)
	assert.Error(t, err)
}

func TestManager_RejectsNoneAlgorithm(t *testing.T) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{Roles: []string{RoleAdmin}})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", "").ValidateToken(signed)
	assert.Error(t, err)
}

func TestClaims_HasAnyRoleIgnoresCase(t *testing.T) {
	c := &Claims{Roles: []string{"role_admin"}}
	assert.True(t, c.HasAnyRole(RoleAdmin))
}
