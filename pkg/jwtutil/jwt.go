package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/imadegun/prod-tracking-app/pkg/config"
)

var cfg *config.JWTConfig

// UserClaims represents the JWT claims for an authenticated user
type UserClaims struct {
	Username  string `json:"username"`
	UserID    uint   `json:"user_id"`
	CompanyID uint   `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Initialize sets the JWT configuration for the package
func Initialize(jwtConfig *config.JWTConfig) {
	cfg = jwtConfig
}

// GenerateToken creates a JWT token carrying the user's identity, role and company
func GenerateToken(username string, userID, companyID uint, role string) (string, error) {
	if cfg == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := UserClaims{
		Username:  username,
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SigningKey))
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	if cfg == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
