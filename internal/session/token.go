package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const tokenIssuer = "hoponhub"

// Codec signs session ids into cookie values and verifies them.
type Codec struct {
	key []byte
	now func() time.Time
}

// NewCodec derives an HMAC key from secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session: empty secret")
	}
	r := hkdf.New(sha256.New, []byte(secret), []byte("hoponhub-session-cookie"), []byte("hs256"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &Codec{key: key, now: time.Now}, nil
}

// Encode returns a signed token carrying sid.
func (c *Codec) Encode(sid string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       sid,
		Issuer:   tokenIssuer,
		IssuedAt: jwt.NewNumericDate(c.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Decode verifies token and returns the session id inside it.
func (c *Codec) Decode(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", errors.New("session token: missing id")
	}
	return claims.ID, nil
}
