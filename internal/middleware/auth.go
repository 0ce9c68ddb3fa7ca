package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bansalsd420/smart-ambulance-api/internal/model"
	"github.com/bansalsd420/smart-ambulance-api/pkg/auth"
)

// ContextPrincipal is the gin context key holding the authenticated
// principal.
const ContextPrincipal = "principal"

type AuthMiddleware struct {
	jwt auth.JWTService
	// Verified token claims cached briefly to skip repeated signature
	// checks. Authentication only: authorization state is never cached.
	cache *gocache.Cache
}

func NewAuthMiddleware(jwt auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwt:   jwt,
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

// Authenticate verifies the bearer token and stores the principal on the
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:  http.StatusUnauthorized,
				Error: "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:  http.StatusUnauthorized,
				Error: "invalid authorization format",
			})
			return
		}
		token := parts[1]

		if cached, ok := m.cache.Get(token); ok {
			c.Set(ContextPrincipal, cached.(*model.Principal))
			c.Next()
			return
		}

		principal, err := m.jwt.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:  http.StatusUnauthorized,
				Error: "invalid token",
			})
			return
		}

		m.cache.SetDefault(token, principal)
		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// RequireRole restricts the route to the given roles.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:  http.StatusUnauthorized,
				Error: "authentication required",
			})
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Code:  http.StatusForbidden,
			Error: "insufficient role",
		})
	}
}

// Principal returns the authenticated principal, or nil.
func Principal(c *gin.Context) *model.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(*model.Principal); ok {
			return p
		}
	}
	return nil
}
