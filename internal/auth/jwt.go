// Package auth provides token issuance/verification, password hashing, and
// the HTTP middleware that authenticates requests.
//
// The token is the session: a signed JWT carrying the user's identity, so
// no session state lives on the server. A token stays valid until its
// expiry even if the account is later banned — which is why RequireAuth
// re-checks the account's current state on every call (see middleware.go).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 24 * time.Hour

const issuer = "rede-social"

// Identity is the claim embedded in every token: just enough to know who
// is calling without a database lookup.
type Identity struct {
	UserID   string
	Username string
}

// TokenService signs and verifies bearer tokens with a symmetric HS256
// secret. The same secret is used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least
// 32 bytes of random data in production; 16 is the enforced floor.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: registered claims (sub, iat, exp, iss) plus
// the username so handlers can address the caller without a lookup.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate issues a signed token for id, valid for 24 hours.
func (s *TokenService) Generate(id Identity) (string, error) {
	return s.GenerateWithDuration(id, tokenTTL)
}

// GenerateWithDuration issues a token with a custom lifetime. Used by
// tests to produce already-expired tokens.
func (s *TokenService) GenerateWithDuration(id Identity, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the identity it
// carries. Any failure — bad signature, expiry, wrong algorithm, garbage
// input — comes back as an error; callers treat them all as
// "unauthenticated" and must not distinguish further.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		// Pinning the method prevents algorithm-confusion attacks.
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token claims")
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("auth: token has no subject")
	}

	return Identity{UserID: c.Subject, Username: c.Username}, nil
}
