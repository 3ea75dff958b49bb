package middleware

import (
	"net/http"
	"strings"

	"benchracers_backend/internal/auth"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Сохраняем claims в контекст
		c.Set("userEmail", claims.Email)
		c.Set("userName", claims.Name)
		c.Set("isEditor", claims.IsEditor)
		c.Next()
	}
}

// OptionalAuthMiddleware - мягкий вариант: невалидный или отсутствующий
// токен не обрывает запрос, запрос продолжается как анонимный.
// Используется на публичных страницах ленты и комментариев.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := auth.ParseToken(tokenStr); err == nil {
				c.Set("userEmail", claims.Email)
				c.Set("userName", claims.Name)
				c.Set("isEditor", claims.IsEditor)
			}
		}
		c.Next()
	}
}

// EditorMiddleware - ограничение маршрутов для редакторов.
// Флаг из токена не считаем истиной: права могли отозвать,
// поэтому перепроверяем is_editor по таблице users.
func EditorMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetUserEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no user"})
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		user, err := userRepo.FindByEmail(db, email)
		if err != nil || !user.IsEditor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserEmail извлекает email пользователя из контекста
func GetUserEmail(c *gin.Context) string {
	emailVal, exists := c.Get("userEmail")
	if !exists {
		return ""
	}

	email, ok := emailVal.(string)
	if !ok {
		return ""
	}

	return email
}
