package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor_id"

// Claims is the token payload issued by the identity provider. The subject
// claim carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// RequireAuth verifies the bearer token and stores the acting identity in
// the request context. Every request without a valid identity is rejected
// uniformly with 401.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		actor, err := uuid.Parse(claims.Subject)
		if err != nil || actor == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no identity"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the acting identity stored by RequireAuth, or uuid.Nil when
// none is present.
func Actor(c *gin.Context) uuid.UUID {
	v, ok := c.Get(actorKey)
	if !ok {
		return uuid.Nil
	}
	actor, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return actor
}
