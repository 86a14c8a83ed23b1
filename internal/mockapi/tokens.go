// ABOUTME: HS256 bearer token issuing and verification for the mock backend
// ABOUTME: Claims carry the user ID, role, and an admin scope marker

package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// tokenClaims is the JWT payload for issued bearer tokens.
type tokenClaims struct {
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// issueToken signs a bearer token for a user. Admin logins get scope "admin"
// so the token's provenance survives role changes.
func issueToken(secret []byte, userID, role, scope string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role:  role,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies a bearer token and returns its claims.
func parseToken(secret []byte, token string) (*tokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
