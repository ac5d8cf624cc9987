package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func mintToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	subjectID := uuid.New()
	token := mintToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		Issuer:    "identity.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	v := NewVerifier(testSecret, "identity.example.com")
	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, subjectID, got)
}

func TestVerify_EmptyToken(t *testing.T) {
	v := NewVerifier(testSecret, "")
	_, err := v.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	token := mintToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	v := NewVerifier(testSecret, "")
	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token := mintToken(t, "some-other-secret", jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	v := NewVerifier(testSecret, "")
	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	token := mintToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "evil.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	v := NewVerifier(testSecret, "identity.example.com")
	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	token := mintToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	v := NewVerifier(testSecret, "")
	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	// alg=none tokens must never pass.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	v := NewVerifier(testSecret, "")
	_, err = v.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
