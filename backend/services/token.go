// ABOUTME: Shared access-key gate for the calculator API
// ABOUTME: Checks the key against a bcrypt hash and issues/verifies HS256 tokens

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAccessKey is returned when the presented key does not match
var ErrInvalidAccessKey = errors.New("invalid access key")

const tokenIssuer = "spring-design-calculator"

// AccessGate validates the shared access key and manages session tokens
type AccessGate struct {
	keyHash []byte
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewAccessGate creates a gate from a bcrypt hash and an HMAC signing key.
func NewAccessGate(keyHash, signKey string, ttl time.Duration) *AccessGate {
	return &AccessGate{
		keyHash: []byte(keyHash),
		signKey: []byte(signKey),
		ttl:     ttl,
		now:     time.Now,
	}
}

// HashAccessKey returns the bcrypt hash to store in ACCESS_KEY_HASH.
func HashAccessKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access key: %w", err)
	}
	return string(hash), nil
}

// Login checks the access key and returns a signed token with its expiry.
func (g *AccessGate) Login(accessKey string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(g.keyHash, []byte(accessKey)); err != nil {
		return "", time.Time{}, ErrInvalidAccessKey
	}
	return g.Issue()
}

// Issue signs a new session token.
func (g *AccessGate) Issue() (string, time.Time, error) {
	now := g.now()
	expires := now.Add(g.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(g.signKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks signature, issuer, and expiry and returns the token ID.
func (g *AccessGate) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.signKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}
