package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common token errors
var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingToken  = errors.New("authorization token required")
	ErrWrongTokenUse = errors.New("token not valid for this use")
)

// Token types carried in the claims so an access token cannot be replayed
// as a refresh token and vice versa
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the JWT claims for a user session
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates HS256-signed access and refresh tokens
type JWTManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTManager creates a new JWT manager. secretKey should be a strong
// random string; accessTTL and refreshTTL control how long each token
// kind remains valid.
func NewJWTManager(secretKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken creates a short-lived access token for the user
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.generate(userID, TokenTypeAccess, m.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token for the user
func (m *JWTManager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return m.generate(userID, TokenTypeRefresh, m.refreshTTL)
}

func (m *JWTManager) generate(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID.String(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken parses an access token and returns the user ID
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	return m.validate(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken parses a refresh token and returns the user ID
func (m *JWTManager) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	return m.validate(tokenString, TokenTypeRefresh)
}

func (m *JWTManager) validate(tokenString, wantType string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return uuid.Nil, ErrWrongTokenUse
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
