package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the Sahayak JWT payload
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"sub_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Manager issues and verifies HMAC-signed tokens
type Manager struct {
	secretKey     []byte
	accessTTLMin  int
	refreshTTLMin int
}

// NewManager creates a token manager. TTLs are in minutes.
func NewManager(secret string, accessTTLMin, refreshTTLMin int) *Manager {
	return &Manager{
		secretKey:     []byte(secret),
		accessTTLMin:  accessTTLMin,
		refreshTTLMin: refreshTTLMin,
	}
}

// GenerateAccessToken creates a short-lived access token
func (m *Manager) GenerateAccessToken(userID, displayName, role string) (string, error) {
	return m.generate(userID, displayName, role, time.Duration(m.accessTTLMin)*time.Minute)
}

// GenerateRefreshToken creates a long-lived refresh token carrying only the user ID
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	return m.generate(userID, "", "", time.Duration(m.refreshTTLMin)*time.Minute)
}

func (m *Manager) generate(userID, displayName, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
