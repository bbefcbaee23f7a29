package handlers

import (
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type OverviewHandler struct {
	registry *services.WorkspaceRegistry
}

func NewOverviewHandler(registry *services.WorkspaceRegistry) *OverviewHandler {
	return &OverviewHandler{registry: registry}
}

// GetOverview loads and returns the dashboard landing page.
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	if err := ws.Overview.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	overview, err := ws.Overview.Overview()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", overview)
}
