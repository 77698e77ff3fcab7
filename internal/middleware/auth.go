package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/session"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextIdentity = "identity"
)

// Session resolves the caller from the session cookie (or a Bearer
// header) and stores the identity on the context. It never aborts.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := mgr.Resolve(c.Request.Context(), tokenFrom(c)); id != nil {
			c.Set(ContextIdentity, id)
			c.Set(ContextUserID, id.UserID)
			c.Set(ContextUserRole, string(id.Role))
		}
		c.Next()
	}
}

func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
			c.Abort()
			return
		}
		if !id.IsAdmin() {
			httperr.Forbidden(c, "forbidden", "Administrator access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (*session.Identity, bool) {
	v, exists := c.Get(ContextIdentity)
	if !exists {
		return nil, false
	}
	id, ok := v.(*session.Identity)
	return id, ok && id != nil
}

func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
