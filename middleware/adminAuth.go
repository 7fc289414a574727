package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"firebase.google.com/go/v4/auth"
)

// AdminUIDKey is the context key under which the verified caller identity is
// stored. Handlers read it once and pass the identity explicitly into
// services; nothing below the HTTP boundary consults ambient auth state.
const AdminUIDKey = "adminUID"

// FirebaseAuthAdminMiddleware verifies a Firebase ID token on every admin
// request. Identity management itself is delegated to Firebase Auth.
func FirebaseAuthAdminMiddleware(client *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AdminUIDKey, token.UID)
		c.Next()
	}
}

// CallerUID extracts the verified caller identity set by the auth middleware.
func CallerUID(c *gin.Context) string {
	if uid, ok := c.Get(AdminUIDKey); ok {
		if s, ok := uid.(string); ok {
			return s
		}
	}
	return ""
}
