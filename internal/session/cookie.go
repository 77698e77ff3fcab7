package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetCookie stores token in an HttpOnly, SameSite=Strict cookie that
// lives exactly as long as the token.
func SetCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, int(ttl/time.Second), "/", "", secure, true)
}

func ClearCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
