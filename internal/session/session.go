package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSession возвращается, когда пользователь не аутентифицирован
	ErrNoSession = errors.New("session: not authenticated")

	// ErrMalformedToken возвращается, когда токен не является валидным JWT
	ErrMalformedToken = errors.New("session: malformed token")
)

// Session хранит bearer-токен текущего пользователя и внедряется в HTTP слой
// явно, вместо глобального состояния. Подпись токена клиент не проверяет -
// это задача сервера; здесь разбираются только claims для контроля срока действия.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time // нулевое значение = срок неизвестен
}

// New создает пустую сессию
func New() *Session {
	return &Session{}
}

// SetToken сохраняет токен и извлекает срок действия из claims
func (s *Session) SetToken(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = raw
	s.expiresAt = expiresAt
	return nil
}

// Token возвращает текущий bearer-токен
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNoSession
	}
	return s.token, nil
}

// IsAuthenticated сообщает, установлен ли токен
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsExpired сообщает, истек ли срок действия токена.
// Токен без exp claim считается действующим.
func (s *Session) IsExpired(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.expiresAt.IsZero() {
		return false
	}
	return !now.Before(s.expiresAt)
}

// ExpiresAt возвращает срок действия токена, если он известен
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// Clear удаляет токен (logout)
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
