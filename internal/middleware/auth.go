package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/utils"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// Authenticate extracts the bearer token, verifies it and attaches the
// caller's id and role to the context. Short-circuits with 401.
func Authenticate(tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, utils.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Runs after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id. Zero when the route is
// not behind Authenticate.
func UserID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

// UserRole returns the authenticated caller's role.
func UserRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ctxUserRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
