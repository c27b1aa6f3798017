// Package auth issues and verifies the bearer tokens of joblyd.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// secretSettingKey is the settings row holding a generated signing secret
const secretSettingKey = "jwt_secret"

// TokenPayload is what a token asserts about its bearer
type TokenPayload struct {
	Username string
	IsAdmin  bool
}

// Identity is the request-scoped view of a verified token
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	TokenID  string `json:"-"`
}

// Config holds JWT service configuration
type Config struct {
	// SecretKey signs tokens. When empty, a secret is generated once and
	// kept in the settings store.
	SecretKey string
}

// SettingsStore persists the generated signing secret
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// JWTService signs and verifies HS256 tokens. Tokens carry no expiry.
type JWTService struct {
	secretKey []byte
}

func generateSecretKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewJWTService creates a JWT service. settings may be nil when a secret
// key is configured.
func NewJWTService(cfg Config, settings SettingsStore) (*JWTService, error) {
	secret := cfg.SecretKey
	if secret == "" {
		if settings == nil {
			return nil, fmt.Errorf("no secret key configured and no settings store to keep one")
		}
		stored, err := settings.GetSetting(secretSettingKey)
		if err != nil || stored == "" {
			stored, err = generateSecretKey()
			if err != nil {
				return nil, err
			}
			if err := settings.SetSetting(secretSettingKey, stored); err != nil {
				return nil, fmt.Errorf("failed to persist secret key: %w", err)
			}
		}
		secret = stored
	}

	return &JWTService{secretKey: []byte(secret)}, nil
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// CreateToken signs a token for the payload
func (s *JWTService) CreateToken(payload TokenPayload) (string, error) {
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
		Username: payload.Username,
		IsAdmin:  payload.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies a token's signature and returns its identity
func (s *JWTService) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.ErrTokenInvalid.WithCause(err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, errors.ErrTokenInvalid
	}

	return &Identity{
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
		TokenID:  claims.ID,
	}, nil
}

// TokenFromHeader extracts the token from an Authorization header value.
// The "Bearer " prefix is optional and matched case-insensitively.
func TokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
