package handlers

import (
	"errors"
	"net/http"

	"auto_grow"
	"auto_grow/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgAuthSuccess    = "Authentication successful"
	msgCredsRequired  = "Username and password are required"
	msgInvalidCreds   = "Invalid username or password"
	msgInternalError  = "Internal server error"
	serverInfoMessage = "Auto-Grow API Server"
)

// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  auto_grow.ServerInfo
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, auto_grow.ServerInfo{Message: serverInfoMessage, Version: Version})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Verify credentials
// @Description  Stateless check of the configured username/password pair. No token is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      auto_grow.LoginRequest  true  "Credentials"
// @Success      200   {object}  auto_grow.LoginResponse
// @Failure      400   {object}  auto_grow.ErrorResponse
// @Failure      401   {object}  auto_grow.ErrorResponse
// @Failure      500   {object}  auto_grow.ErrorResponse
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input auto_grow.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, auto_grow.ErrorResponse{Error: msgCredsRequired})
		return
	}

	err := h.services.Verify(input.Username, input.Password)
	switch {
	case err == nil:
		if h.log != nil {
			h.log.Infow("auth_login_succeeded", "username", input.Username)
		}
		c.JSON(http.StatusOK, auto_grow.LoginResponse{Success: true, Message: msgAuthSuccess})
	case errors.Is(err, service.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, auto_grow.ErrorResponse{Error: msgCredsRequired})
	case errors.Is(err, service.ErrInvalidCredentials):
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, auto_grow.ErrorResponse{Error: msgInvalidCreds})
	default:
		if h.log != nil {
			h.log.Errorw("auth_login_error", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusInternalServerError, auto_grow.ErrorResponse{Error: msgInternalError})
	}
}
