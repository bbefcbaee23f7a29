package handlers

import (
	"errors"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	registry *services.WorkspaceRegistry
}

func NewUsersHandler(registry *services.WorkspaceRegistry) *UsersHandler {
	return &UsersHandler{registry: registry}
}

// ListUsers loads the three role lists. On error the frontend keeps its
// previous lists and shows the error, so a failed load is just an error
// response here.
func (h *UsersHandler) ListUsers(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	if err := ws.Users.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	customers, drivers, admins, err := ws.Users.Lists()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", gin.H{
		"customers": customers,
		"drivers":   drivers,
		"admins":    admins,
	})
}

// GetUser opens the detail view for a user already in one of the lists.
func (h *UsersHandler) GetUser(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	if err := ws.Users.Select(c.Param("id")); err != nil {
		if errors.Is(err, dashboard.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", ws.Users.Selected())
}

// ToggleBan flips the user's banned flag everywhere it appears.
func (h *UsersHandler) ToggleBan(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	result := ws.Users.ToggleBan(c.Request.Context(), c.Param("id"))
	respondMutation(c, result, "Ban status updated", nil)
}
