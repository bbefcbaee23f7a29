package handlers

import (
	"errors"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type TicketsHandler struct {
	registry *services.WorkspaceRegistry
}

func NewTicketsHandler(registry *services.WorkspaceRegistry) *TicketsHandler {
	return &TicketsHandler{registry: registry}
}

// ListTickets serves the support queue, optionally filtered by the
// submitter's role and the ticket status. Empty filters mean all.
func (h *TicketsHandler) ListTickets(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	role := models.Role(c.Query("role"))
	status := models.TicketStatus(c.Query("status"))
	if status != "" && !validTicketStatus(status) {
		utils.BadRequestResponse(c, "Unknown ticket status: "+string(status))
		return
	}

	if err := ws.Tickets.SetFilters(c.Request.Context(), role, status); err != nil {
		respondUpstreamError(c, err)
		return
	}
	tickets, err := ws.Tickets.Tickets()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", tickets)
}

// GetTicket expands one ticket into its response thread plus the status
// transitions still available to it.
func (h *TicketsHandler) GetTicket(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	ticket, err := ws.Tickets.Expand(c.Param("id"))
	if err != nil {
		if errors.Is(err, dashboard.ErrTicketNotFound) {
			utils.NotFoundResponse(c, "Ticket")
			return
		}
		respondUpstreamError(c, err)
		return
	}

	options, _ := ws.Tickets.StatusOptions(ticket.ID)
	utils.SuccessResponse(c, "", gin.H{
		"ticket":        ticket,
		"statusOptions": options,
	})
}

type ticketSubmitRequest struct {
	Reply  string              `json:"reply"`
	Status models.TicketStatus `json:"status"`
}

// RespondTicket submits the combined reply-and-status form. An empty reply
// with an unchanged status is a no-op.
func (h *TicketsHandler) RespondTicket(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var request ticketSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid ticket payload")
		return
	}
	if request.Status != "" && !validTicketStatus(request.Status) {
		utils.BadRequestResponse(c, "Unknown ticket status: "+string(request.Status))
		return
	}

	result := ws.Tickets.Submit(c.Request.Context(), c.Param("id"), request.Reply, request.Status)
	respondMutation(c, result, "Ticket updated", nil)
}

func validTicketStatus(status models.TicketStatus) bool {
	for _, s := range models.TicketStatuses {
		if s == status {
			return true
		}
	}
	return false
}
