package middleware

import (
	"strings"

	"autolot-service/internal/pkg/response"
	authService "autolot-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const ContextEmailKey = "auth_email"

type AuthMiddleware struct {
	auth *authService.Service
}

func NewAuthMiddleware(auth *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Auth guards the admin routes: a valid Bearer session token is required.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c, "missing authentication token")
			return
		}

		email, err := m.auth.Verify(tokenString)
		if err != nil {
			response.Unauthorized(c, "invalid or expired session")
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}

// MustGetEmail returns the authenticated account email set by Auth.
func MustGetEmail(c *gin.Context) string {
	email, _ := c.Get(ContextEmailKey)
	s, _ := email.(string)
	return s
}

// extractToken reads the token from the Authorization header or, for
// websocket upgrades, the token query parameter.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}
