package auth

import (
	"net/http"
	"strings"

	"attendance-tracker-backend/internal/authz"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// Middleware provides bearer-token authentication middleware
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth validates the bearer credential and sets the resolved identity
// on the request context
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := m.service.ResolveIdentity(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
			c.Abort()
			return
		}

		c.Set(identityContextKey, identity)
		c.Set("user_id", identity.UserID.String())
		c.Set("email", identity.Email)
		c.Set("role", string(identity.Role))

		c.Next()
	}
}

// GetIdentity extracts the resolved identity from the request context
func GetIdentity(c *gin.Context) (*authz.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}

	identity, ok := value.(*authz.Identity)
	return identity, ok
}

// SetIdentity places an identity on the context; used by tests to simulate an
// authenticated request without minting tokens
func SetIdentity(c *gin.Context, identity *authz.Identity) {
	c.Set(identityContextKey, identity)
	c.Set("user_id", identity.UserID.String())
	c.Set("email", identity.Email)
	c.Set("role", string(identity.Role))
}
