package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CompetitionGrant is a competition the authenticated user has access to,
// embedded in the session token so clients can scope their views without an
// extra round trip.
type CompetitionGrant struct {
	CompetitionID uint   `json:"CompetitionID"`
	Name          string `json:"Name"`
}

// TeamGrant is a team the authenticated user has access to.
type TeamGrant struct {
	TeamID   uint   `json:"TeamID"`
	TeamName string `json:"TeamName"`
}

// Claims are the session token claims. The competition/team context comes
// from the user's actual grant rows at login time — never from a hardcoded
// default.
type Claims struct {
	UserID        uint               `json:"user_id"`
	Username      string             `json:"username"`
	Roles         []string           `json:"roles"`
	Competitions  []CompetitionGrant `json:"competitions"`
	Teams         []TeamGrant        `json:"teams"`
	DefaultTeamID *uint              `json:"default_team_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates an HS256-signed session token for the given user.
// Expiry is exactly issuedAt + ttl; there is no refresh or revocation path —
// an expired token simply forces a new login.
func GenerateToken(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims. It rejects
// tokens with a bad or missing signature, an expiry in the past, or an
// unexpected signing algorithm (guards against alg-confusion attacks).
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
