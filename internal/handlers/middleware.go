package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxUsername = "username"

// basicAuthMiddleware checks HTTP Basic credentials against the configured
// pair on every request. There is no session on the server side.
func (h *Handler) basicAuthMiddleware(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="auto-grow"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or malformed Authorization header",
		})
		return
	}

	if err := h.services.Verify(username, password); err != nil {
		if h.log != nil {
			h.log.Infow("auth_basic_rejected", "username", username, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid credentials",
		})
		return
	}

	c.Set(ctxUsername, username)
	c.Next()
}
