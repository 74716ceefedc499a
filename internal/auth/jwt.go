// Package auth signs the console session cookie. The token only proves the
// cookie was issued by this process for the signed-in user; the backend
// itself never sees it.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "shopdesk_session"

var ErrInvalidToken = errors.New("invalid token")

type Manager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	now    func() time.Time
}

// NewManager returns a manager signing with secret, or with a random
// per-process secret when secret is empty.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
	}
	return &Manager{Secret: key, TTL: ttl, Issuer: "shopdesk", now: time.Now}, nil
}

type Claims struct {
	jwt.RegisteredClaims
}

func (m *Manager) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now()
}

// NewToken issues a token whose subject is userID.
func (m *Manager) NewToken(userID string) (string, error) {
	now := m.clock()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	},
		jwt.WithIssuer(m.Issuer),
		jwt.WithTimeFunc(m.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
