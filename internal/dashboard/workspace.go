package dashboard

import (
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

// Workspace bundles one admin session's page controllers. Each session gets
// its own workspace so per-page state (selections, filters, caches,
// in-flight guards) never leaks between admins.
type Workspace struct {
	Overview    *OverviewController
	Analytics   *AnalyticsController
	Users       *UsersController
	Routes      *RoutesController
	Withdrawals *WithdrawalsController
	Tickets     *TicketsController
	Wallet      *WalletController
	Settings    *SettingsController
}

// NewWorkspace builds the controller set over an upstream client already
// bound to the session's cookie.
func NewWorkspace(client *upstream.Client, log *logger.Logger) *Workspace {
	return &Workspace{
		Overview:    NewOverviewController(client, log),
		Analytics:   NewAnalyticsController(client, log),
		Users:       NewUsersController(client, log),
		Routes:      NewRoutesController(client, log),
		Withdrawals: NewWithdrawalsController(client, log),
		Tickets:     NewTicketsController(client, log),
		Wallet:      NewWalletController(client, log),
		Settings:    NewSettingsController(client, log),
	}
}
