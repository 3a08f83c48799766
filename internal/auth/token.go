// Package auth issues and validates admin session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSecret is returned when the server has no signing secret configured.
var ErrNoSecret = errors.New("no jwt secret configured")

// Session is the authenticated admin session carried by a valid token.
type Session struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

// NewToken signs an HS256 JWT for the given admin account. The token carries
// an expiry; the middleware re-validates it on every privileged request, so
// a stale token is rejected rather than trusted for merely existing.
func NewToken(secret string, userID int64, email string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrNoSecret
	}
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
		"jti":   uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates a raw token and returns the session it represents.
func ParseToken(secret, raw string) (*Session, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sess := &Session{}
	if sub, err := claims.GetSubject(); err == nil {
		fmt.Sscanf(sub, "%d", &sess.UserID)
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}
