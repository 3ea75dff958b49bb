package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"benchracers_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка access-токена.
// isEditor кладем в токен только как подсказку для UI,
// админ-маршруты перепроверяют флаг по базе.
type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsEditor bool   `json:"isEditor"`
	jwt.RegisteredClaims
}

// GenerateToken создает новый подписанный access-токен
func GenerateToken(email, name string, isEditor bool) (string, error) {
	cfg := config.GetConfig()
	ttl := time.Duration(cfg.JWT.TTL) * time.Minute

	claims := Claims{
		Email:    email,
		Name:     name,
		IsEditor: isEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken валидирует токен и извлекает claims
func ParseToken(tokenString string) (*Claims, error) {
	cfg := config.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GenerateRandomToken генерирует случайный токен для
// верификации email и сброса пароля
func GenerateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
