package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken собирает подписанный JWT с заданными claims.
// Подпись не проверяется сессией, важна только структура токена.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSession_SetToken(t *testing.T) {
	s := New()

	require.False(t, s.IsAuthenticated())
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)

	exp := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	raw := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})

	require.NoError(t, s.SetToken(raw))
	assert.True(t, s.IsAuthenticated())

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	expiresAt, known := s.ExpiresAt()
	require.True(t, known)
	assert.True(t, expiresAt.Equal(exp))
}

func TestSession_SetToken_Malformed(t *testing.T) {
	s := New()

	assert.ErrorIs(t, s.SetToken(""), ErrMalformedToken)
	assert.ErrorIs(t, s.SetToken("not-a-jwt"), ErrMalformedToken)
	assert.ErrorIs(t, s.SetToken("a.b"), ErrMalformedToken)

	// Неудачная установка не аутентифицирует
	assert.False(t, s.IsAuthenticated())
}

func TestSession_IsExpired(t *testing.T) {
	s := New()
	exp := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SetToken(signToken(t, jwt.MapClaims{"exp": exp.Unix()})))

	assert.False(t, s.IsExpired(exp.Add(-time.Hour)))
	assert.True(t, s.IsExpired(exp))
	assert.True(t, s.IsExpired(exp.Add(time.Hour)))
}

func TestSession_IsExpired_NoExpClaim(t *testing.T) {
	s := New()

	// Токен без exp считается действующим
	require.NoError(t, s.SetToken(signToken(t, jwt.MapClaims{"sub": "user-1"})))
	assert.False(t, s.IsExpired(time.Now().AddDate(10, 0, 0)))

	// Пустая сессия не истекла
	empty := New()
	assert.False(t, empty.IsExpired(time.Now()))
}

func TestSession_Clear(t *testing.T) {
	s := New()
	require.NoError(t, s.SetToken(signToken(t, jwt.MapClaims{"sub": "user-1"})))

	s.Clear()

	assert.False(t, s.IsAuthenticated())
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
	_, known := s.ExpiresAt()
	assert.False(t, known)
}
