package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"budget-be/internal/jwt"
)

// SessionCookieName is the HTTP-only cookie carrying the session token
const SessionCookieName = "session"

// AuthMiddleware resolves the authenticated principal from the session
// cookie or, failing that, an Authorization Bearer header. The principal id
// is stored on the request context for the controllers.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "Authentication required",
				})
				c.Abort()
				return
			}
			tokenString = parts[1]
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
