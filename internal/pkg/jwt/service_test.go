package jwt

import (
	"testing"
	"time"

	"job-board/internal/domain/user"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	id := uuid.New()

	tok, err := svc.GenerateToken(id, user.RoleRecruiter)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, user.RoleRecruiter, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestHMACService_Expired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewHMACService("secret", time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateToken(uuid.New(), user.RoleSeeker)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("secret", time.Hour).GenerateToken(uuid.New(), user.RoleSeeker)
	require.NoError(t, err)

	_, err = NewHMACService("other", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Tampered(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	tok, err := svc.GenerateToken(uuid.New(), user.RoleSeeker)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tok + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsOtherAlgorithms(t *testing.T) {
	c := Claims{
		UserID: uuid.New(),
		Role:   user.RoleRecruiter,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RequiresExpiry(t *testing.T) {
	c := Claims{UserID: uuid.New(), Role: user.RoleRecruiter}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACService("secret", time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_GenerateWithoutSecret(t *testing.T) {
	_, err := NewHMACService("", time.Hour).GenerateToken(uuid.New(), user.RoleSeeker)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
