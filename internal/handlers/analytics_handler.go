package handlers

import (
	"net/http"
	"time"

	"ecocruise-admin/internal/export"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	registry *services.WorkspaceRegistry
}

func NewAnalyticsHandler(registry *services.WorkspaceRegistry) *AnalyticsHandler {
	return &AnalyticsHandler{registry: registry}
}

// parseDateRange reads the page's range selection from the query string.
// Unknown values fall back to all time, matching the range picker's
// default.
func parseDateRange(c *gin.Context) upstream.DateRange {
	switch c.Query("range") {
	case "7":
		return upstream.LastSevenDays()
	case "month":
		return upstream.ThisMonth()
	}
	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		return upstream.Custom(from, to)
	}
	return upstream.AllTime()
}

// GetAnalytics loads the analytics page for the requested range.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	rng := parseDateRange(c)
	if err := ws.Analytics.Load(c.Request.Context(), rng); err != nil {
		respondUpstreamError(c, err)
		return
	}
	summary, err := ws.Analytics.Summary()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", summary)
}

// ExportAnalytics renders the current analytics view as a PDF download.
func (h *AnalyticsHandler) ExportAnalytics(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	rng := parseDateRange(c)
	if err := ws.Analytics.Load(c.Request.Context(), rng); err != nil {
		respondUpstreamError(c, err)
		return
	}
	summary, err := ws.Analytics.Summary()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	data, filename, err := export.BuildAnalyticsReport(summary, rng, time.Now())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
