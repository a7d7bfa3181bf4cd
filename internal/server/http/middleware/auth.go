package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sxtvrno/storefront/internal/domain/model"
	pkgAuth "github.com/sxtvrno/storefront/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated principal.
	PrincipalContextKey = "principal"
	// SessionHeader carries the anonymous cart session identifier.
	SessionHeader  = "X-Session-ID"
	authCookieName = "storefront_token"
)

// TokenParser validates bearer tokens into principals.
type TokenParser interface {
	ParseToken(token string) (model.Principal, error)
}

// OptionalAuth attaches the principal when a valid token is present and lets
// anonymous requests through. A malformed token is still rejected.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		principal, err := parser.ParseToken(token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// AuthRequired ensures the request carries a valid token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		principal, err := parser.ParseToken(token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// AdminRequired ensures the request is authenticated as an administrator.
func AdminRequired(parser TokenParser) gin.HandlerFunc {
	required := AuthRequired(parser)
	return func(c *gin.Context) {
		required(c)
		if c.IsAborted() {
			return
		}
		principal, ok := CurrentPrincipal(c)
		if !ok || !principal.Admin() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
	}
}

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) (model.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := val.(model.Principal)
	return principal, ok
}

func abortAuth(c *gin.Context, err error) {
	if err == pkgAuth.ErrInvalidToken {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
