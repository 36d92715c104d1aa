package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kintai-app/kintai/security"
	"github.com/kintai-app/kintai/web/common"
)

const identityKey = "identity"

// Authentication checks for a valid Bearer token and stashes the caller's
// Identity into the request context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie("kintai.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}

			tokenStr = parts[1]
		}

		identity, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}
		if identity.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("token has no subject"))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity extracts the Identity a prior Authentication middleware
// stored on the context.
func CurrentIdentity(c *gin.Context) (*security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*security.Identity)
	return identity, ok
}
