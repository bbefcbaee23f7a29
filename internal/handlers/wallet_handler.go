package handlers

import (
	"errors"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	registry *services.WorkspaceRegistry
}

func NewWalletHandler(registry *services.WorkspaceRegistry) *WalletHandler {
	return &WalletHandler{registry: registry}
}

// LookupWallet finds the customer behind an email address and loads their
// balance into the adjustment tool.
func (h *WalletHandler) LookupWallet(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "Email is required")
		return
	}

	user, err := ws.Wallet.Lookup(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, dashboard.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User")
			return
		}
		respondUpstreamError(c, err)
		return
	}
	utils.SuccessResponse(c, "", user)
}

// AdjustWallet credits or debits the loaded user's balance.
func (h *WalletHandler) AdjustWallet(c *gin.Context) {
	ws := workspaceFor(c, h.registry)
	if ws == nil {
		return
	}

	var adjustment models.WalletAdjustment
	if err := c.ShouldBindJSON(&adjustment); err != nil {
		utils.BadRequestResponse(c, "Invalid adjustment payload")
		return
	}

	result := ws.Wallet.Adjust(c.Request.Context(), adjustment)
	respondMutation(c, result, "Wallet updated", ws.Wallet.User())
}
