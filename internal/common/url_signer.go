package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedToken represents a presigned compliance-report token
type SignedToken struct {
	PilotID   string
	Fleet     string
	TokenID   string
	ExpiresAt time.Time
}

// URLSignerService generates and validates presigned URLs for sharing a
// pilot's compliance report without an API key
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateReportToken generates a single-use presigned report token
func (s *URLSignerService) GenerateReportToken(
	pilotID, fleet string,
	ttl time.Duration,
) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"pilot_id": pilotID,
		"fleet":    fleet,
		"jti":      tokenID,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a presigned report token
func (s *URLSignerService) ValidateToken(ctx context.Context, tokenString string) (*SignedToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	pilotID, ok := (*claims)["pilot_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid pilot_id claim")
	}

	fleet, ok := (*claims)["fleet"].(string)
	if !ok {
		return nil, errors.New("missing or invalid fleet claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	isUsed, err := s.IsTokenUsed(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token usage: %w", err)
	}
	if isUsed {
		return nil, errors.New("token already used")
	}

	return &SignedToken{
		PilotID:   pilotID,
		Fleet:     fleet,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// MarkTokenAsUsed marks a token as used (single-use enforcement)
func (s *URLSignerService) MarkTokenAsUsed(ctx context.Context, tokenID string) error {
	// TTL matches the default token lifetime
	ttl := 15 * time.Minute

	err := s.redis.Set(ctx, "used_token:"+tokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	return nil
}

// IsTokenUsed checks if a token has already been used
func (s *URLSignerService) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.redis.Get(ctx, "used_token:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token usage: %w", err)
	}
	return result == "1", nil
}
