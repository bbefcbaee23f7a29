package handlers

import (
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type WithdrawalsHandler struct {
	registry *services.WorkspaceRegistry
}

func NewWithdrawalsHandler(registry *services.WorkspaceRegistry) *WithdrawalsHandler {
	return &WithdrawalsHandler{registry: registry}
}

// ListWithdrawals serves the queue for the requested status filter. With no
// status parameter the workspace's current filter is reused, hitting the
// per-status cache when it is warm.
func (h *WithdrawalsHandler) ListWithdrawals(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var (
		withdrawals []models.Withdrawal
		err         error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.WithdrawalStatus(raw)
		switch status {
		case models.WithdrawalStatusPending, models.WithdrawalStatusApproved,
			models.WithdrawalStatusRejected, models.WithdrawalStatusPaid:
		default:
			utils.BadRequestResponse(c, "Unknown withdrawal status: "+raw)
			return
		}
		withdrawals, err = ws.Withdrawals.SetFilter(c.Request.Context(), status)
	} else {
		withdrawals, err = ws.Withdrawals.Withdrawals(c.Request.Context())
	}
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	utils.SuccessResponse(c, "", gin.H{
		"filter":      ws.Withdrawals.Filter(),
		"withdrawals": withdrawals,
	})
}

func (h *WithdrawalsHandler) ApproveWithdrawal(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	result := ws.Withdrawals.Approve(c.Request.Context(), c.Param("id"))
	respondMutation(c, result, "Withdrawal approved", nil)
}

type rejectRequest struct {
	Note string `json:"note"`
}

func (h *WithdrawalsHandler) RejectWithdrawal(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var request rejectRequest
	_ = c.ShouldBindJSON(&request)

	result := ws.Withdrawals.Reject(c.Request.Context(), c.Param("id"), request.Note)
	respondMutation(c, result, "Withdrawal rejected", nil)
}
