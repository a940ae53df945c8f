package auth

import (
	"errors"
	"time"

	"launchboard_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	secret            []byte
	tokenTTL          = 24 * time.Hour
)

// InitSession configures the signing secret and TTL for session tokens.
func InitSession(sessionSecret string, ttlMinutes int) {
	secret = []byte(sessionSecret)
	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// SessionClaims is everything the server keeps against a session: user id,
// role, admin flag, subscription status.
type SessionClaims struct {
	UserID             string                    `json:"uid"`
	Role               string                    `json:"role"`
	IsAdmin            bool                      `json:"adm"`
	SubscriptionStatus models.SubscriptionStatus `json:"sub"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a session token for the user. The token travels in an
// HTTP-only cookie.
func NewSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:             user.ID,
		Role:               user.Role,
		IsAdmin:            user.IsAdmin,
		SubscriptionStatus: user.SubscriptionStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
