package handlers

import (
	"errors"
	"net/http"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/middleware"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     *services.AuthService
	registry *services.WorkspaceRegistry
	security *config.SecurityConfig
}

func NewAuthHandler(auth *services.AuthService, registry *services.WorkspaceRegistry, security *config.SecurityConfig) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		registry: registry,
		security: security,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login signs the admin in against the upstream API and sets the dashboard
// session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Email and password are required")
		return
	}

	session, token, err := h.auth.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotAdmin) {
			utils.ForbiddenResponse(c)
			return
		}
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", apiErr.Message)
			return
		}
		respondUpstreamError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.security.SessionTTL.Seconds()))
	utils.SuccessResponse(c, "Logged in", session.User)
}

// Me re-validates the session against upstream and returns the admin.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	refreshed, err := h.auth.Refresh(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.setSessionCookie(c, "", -1)
			utils.UnauthorizedResponse(c)
			return
		}
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", refreshed.User)
}

// Logout closes both sessions and drops the workspace.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.SessionFrom(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), session); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	h.registry.Drop(session.ID)
	h.setSessionCookie(c, "", -1)
	utils.SuccessResponse(c, "Logged out", nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.security.SessionCookieName, token, maxAge, "/", "", h.security.CookieSecure, true)
}
