package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const userID = "507f1f77bcf86cd799439011"

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, userID, got)
}

func TestJWT_EmptyUser(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	_, err := j.GenerateAccessToken("")
	require.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	access, err := NewJWT("secret", time.Hour).GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	j := NewJWT("secret", 15*time.Minute)
	j.now = func() time.Time { return issued }

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(10 * time.Minute) }
	_, err = j.ParseAccessToken(access)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(signed)
	require.Error(t, err)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: userID},
		TokenType:        typeAccess,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAccessToken(signed)
	require.Error(t, err)
}
