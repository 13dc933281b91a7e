// internal/operator/middleware.go
package operator

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TonyMalanga/BroadcastControl/pkg/token"
)

const (
	// ContextActorKey holds the authenticated operator's username.
	ContextActorKey = "actor"
	// ContextOperatorIDKey holds the authenticated operator's id.
	ContextOperatorIDKey = "operator_id"
)

// AuthMiddleware validates the bearer token and stores the operator's
// identity in the request context so handlers can stamp the actor on
// action entries.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&Operator{}).Where("id = ? AND deleted_at IS NULL", claims.OperatorID).Count(&count).Error; err != nil || count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Operator not found or inactive"})
			return
		}

		c.Set(ContextOperatorIDKey, claims.OperatorID)
		c.Set(ContextActorKey, claims.Username)
		c.Next()
	}
}

// ActorFromContext returns the authenticated operator's username, empty
// when the request was not authenticated.
func ActorFromContext(c *gin.Context) string {
	if actor, exists := c.Get(ContextActorKey); exists {
		if s, ok := actor.(string); ok {
			return s
		}
	}
	return ""
}
