package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Role      Role
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// JWTService implements TokenService using HMAC-signed JWTs.
type JWTService struct {
	secretKey []byte
	accessTTL time.Duration
	issuer    string
}

// NewJWTService creates a JWT token service.
func NewJWTService(secretKey string, accessTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
		issuer:    issuer,
	}
}

type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed access token carrying the user's role.
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Email: email.String(),
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and verifies a token string.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Email:     kernel.Email(claims.Email),
		Role:      Role(claims.Role),
		ExpiresAt: expiresAt,
	}, nil
}
