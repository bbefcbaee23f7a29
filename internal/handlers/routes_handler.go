package handlers

import (
	"errors"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type RoutesHandler struct {
	registry *services.WorkspaceRegistry
}

func NewRoutesHandler(registry *services.WorkspaceRegistry) *RoutesHandler {
	return &RoutesHandler{registry: registry}
}

func (h *RoutesHandler) ListRoutes(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	if err := ws.Routes.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	routes, err := ws.Routes.Routes()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", routes)
}

// CreateRoute runs the create form through the controller: validation
// happens before any upstream call.
func (h *RoutesHandler) CreateRoute(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var form models.RouteInput
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid route payload")
		return
	}

	ws.Routes.BeginCreate()
	ws.Routes.SetForm(form)
	result := ws.Routes.Submit(c.Request.Context())
	if result.Failed() {
		respondDashboardError(c, result.Err)
		return
	}

	routes, _ := ws.Routes.Routes()
	utils.CreatedResponse(c, "Route created", routes)
}

func (h *RoutesHandler) UpdateRoute(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var form models.RouteInput
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid route payload")
		return
	}

	// Edit starts from a rendered list; reload so the id resolves even on
	// a fresh workspace.
	if err := ws.Routes.Load(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	if err := ws.Routes.BeginEdit(c.Param("id")); err != nil {
		if errors.Is(err, dashboard.ErrRouteNotFound) {
			utils.NotFoundResponse(c, "Route")
			return
		}
		respondUpstreamError(c, err)
		return
	}

	ws.Routes.SetForm(form)
	result := ws.Routes.Submit(c.Request.Context())
	if result.Failed() {
		respondDashboardError(c, result.Err)
		return
	}

	routes, _ := ws.Routes.Routes()
	utils.SuccessResponse(c, "Route updated", routes)
}

// DeleteRoute requires confirm=true; without it nothing is sent upstream.
func (h *RoutesHandler) DeleteRoute(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	confirmed := c.Query("confirm") == "true"
	result := ws.Routes.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if result.Failed() {
		respondDashboardError(c, result.Err)
		return
	}

	routes, _ := ws.Routes.Routes()
	utils.SuccessResponse(c, "Route deleted", routes)
}
