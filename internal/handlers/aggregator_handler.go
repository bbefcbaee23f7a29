package handlers

import (
	"net/http"

	"ecocruise-admin/internal/aggregator"

	"github.com/gin-gonic/gin"
)

// AggregatorHandler serves the platform analytics aggregate computed
// directly from the database. The reply uses the upstream API's
// {success, data} shape so the dashboard's normalizer consumes both
// sources identically.
type AggregatorHandler struct {
	service *aggregator.Service
}

func NewAggregatorHandler(service *aggregator.Service) *AggregatorHandler {
	return &AggregatorHandler{service: service}
}

func (h *AggregatorHandler) GetAnalytics(c *gin.Context) {
	data, err := h.service.Aggregate(
		c.Request.Context(),
		c.Query("range"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "analytics aggregation failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
