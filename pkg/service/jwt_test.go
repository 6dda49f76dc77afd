package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, time.Hour*24)

	access, refresh, err := svc.GenerateTokens(42, "tecnico")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "tecnico", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestJWTService_ValidateToken_Invalido(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", time.Hour, time.Hour*24)

	_, err := svc.ValidateToken("no-es-un-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_ValidateToken_OtraClave(t *testing.T) {
	emisor := NewJWTService("clave-a", time.Hour, time.Hour*24)
	receptor := NewJWTService("clave-b", time.Hour, time.Hour*24)

	access, _, err := emisor.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = receptor.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expirado(t *testing.T) {
	svc := NewJWTService("clave-de-prueba", -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens(7, "usuario")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
