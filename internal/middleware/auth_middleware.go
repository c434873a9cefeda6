package middleware

import (
	"strings"

	"github.com/Antieqkers/antieq-wisma-bill/internal/models"
	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/jwt"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards routes behind operator login.
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.Manager
}

func NewAuthMiddleware(userService *services.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtManager:  jwt.GetManager(),
	}
}

// RequireLogin validates the bearer token and loads the operator into the
// context.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Silakan login terlebih dahulu")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Format header otorisasi tidak valid")
			c.Abort()
			return
		}

		tokenString := authHeader[7:]

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token tidak valid atau sudah kedaluwarsa")
			c.Abort()
			return
		}

		user, err := m.userService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Akun tidak ditemukan")
			c.Abort()
			return
		}

		if !user.IsActive() {
			response.Unauthorized(c, "Akun dinonaktifkan")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireAdmin restricts a route to admin operators.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "Silakan login terlebih dahulu")
			c.Abort()
			return
		}

		if user.(*models.User).Role != models.RoleAdmin {
			response.Forbidden(c, "Hanya admin yang dapat melakukan tindakan ini")
			c.Abort()
			return
		}

		c.Next()
	}
}
