package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is fixed at 8 hours, matching the session length the
// front end expects.
const TokenValidity = 8 * time.Hour

type TokenData struct {
	ID    int64
	Nome  string
	Email string
	Role  string
}

// GenerateToken signs an HS256 token carrying the identity claims the
// browser front end decodes locally (id, nome, email, role).
func GenerateToken(secret string, data *TokenData) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    data.ID,
		"nome":  data.Nome,
		"email": data.Email,
		"role":  data.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenValidity).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func ValidateToken(secret, tokenString string) (*TokenData, error) {
	clean := sanitizeToken(tokenString)
	token, err := jwt.Parse(clean, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	return &TokenData{
		ID:    getInt64(claims, "id"),
		Nome:  getValue(claims, "nome"),
		Email: getValue(claims, "email"),
		Role:  getValue(claims, "role"),
	}, nil
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
