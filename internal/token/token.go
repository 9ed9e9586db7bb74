// Package token mints and verifies the signed session tokens handed
// out after phone verification. Tokens are self-contained: validity is
// signature + embedded expiry, no server-side state or revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionTTL = 30 * time.Minute

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// SessionClaims carries either a full session (ClientID set) or a
// phone-only assertion of number ownership (ClientID nil).
type SessionClaims struct {
	ClientID *uint  `json:"client_id,omitempty"`
	Phone    string `json:"phone"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// CreateToken signs a session token for the given phone. clientID may
// be nil for a phone-only token.
func (c *Codec) CreateToken(clientID *uint, phone string, now time.Time) (string, error) {
	claims := SessionClaims{
		ClientID: clientID,
		Phone:    phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// VerifyToken recomputes the signature and checks the embedded expiry.
// Any tampering with payload or signature fails verification.
func (c *Codec) VerifyToken(tokenString string) (*SessionClaims, error) {
	var claims SessionClaims

	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
