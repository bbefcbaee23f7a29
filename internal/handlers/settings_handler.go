package handlers

import (
	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	registry *services.WorkspaceRegistry
}

func NewSettingsHandler(registry *services.WorkspaceRegistry) *SettingsHandler {
	return &SettingsHandler{registry: registry}
}

func (h *SettingsHandler) GetProfile(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	if err := ws.Settings.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	profile, err := ws.Settings.Profile()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", profile)
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, "Invalid profile payload")
		return
	}

	result := ws.Settings.UpdateProfile(c.Request.Context(), profile)
	respondMutation(c, result, "Profile updated", nil)
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var form dashboard.PasswordChange
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid password payload")
		return
	}

	result := ws.Settings.ChangePassword(c.Request.Context(), form)
	respondMutation(c, result, "Password changed", nil)
}
