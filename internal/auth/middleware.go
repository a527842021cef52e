package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireAuth.
const (
	SubjectKey = "authSubject"
	EmailKey   = "authEmail"
)

// Claims carried by the session tokens the auth provider mints. HS256 with a
// shared secret; sub is the provider-side user id.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the Authorization bearer token and stores the token's
// subject and email in the gin context. A missing or invalid token is a hard
// 401; there is no anonymous access to anything behind this middleware.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// Subject returns the authenticated provider-side user id from the context.
func Subject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}

// Email returns the authenticated user's email from the context.
func Email(c *gin.Context) string {
	return c.GetString(EmailKey)
}
