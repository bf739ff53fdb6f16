package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/auth"
)

// JWTAuth кладёт sub и role из токена в контекст запроса.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseValidate(secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("sub", claims.Sub)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Ученик, от имени которого выполняется запрос: admin и coach могут
// передать student_id явно, остальные работают только от своего sub.
func studentIDFromRequest(c *gin.Context) string {
	role := c.GetString("role")
	if id := c.Query("student_id"); id != "" && (role == auth.RoleAdmin || role == auth.RoleCoach) {
		return id
	}
	return c.GetString("sub")
}
