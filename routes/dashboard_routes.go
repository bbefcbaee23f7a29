package routes

import (
	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/handlers"
	"ecocruise-admin/internal/middleware"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers collects everything the route tree wires up. Aggregator is nil
// when no database is configured and its endpoint is simply not mounted.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Overview    *handlers.OverviewHandler
	Analytics   *handlers.AnalyticsHandler
	Users       *handlers.UsersHandler
	Routes      *handlers.RoutesHandler
	Withdrawals *handlers.WithdrawalsHandler
	Tickets     *handlers.TicketsHandler
	Wallet      *handlers.WalletHandler
	Settings    *handlers.SettingsHandler
	Aggregator  *handlers.AggregatorHandler
}

// SetupDashboardRoutes registers the dashboard API under /api/v1.
func SetupDashboardRoutes(r *gin.RouterGroup, h *Handlers, auth *services.AuthService, security *config.SecurityConfig, log *logger.Logger) {
	sessionRequired := middleware.SessionRequired(auth, security.SessionCookieName)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", sessionRequired, h.Auth.Me)
		authGroup.POST("/logout", sessionRequired, h.Auth.Logout)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(sessionRequired, middleware.AdminRequired(), middleware.AuditLog(log))
	{
		dashboard.GET("/overview", h.Overview.GetOverview)

		dashboard.GET("/analytics", h.Analytics.GetAnalytics)
		dashboard.GET("/analytics/export", h.Analytics.ExportAnalytics)

		dashboard.GET("/users", h.Users.ListUsers)
		dashboard.GET("/users/:id", h.Users.GetUser)
		dashboard.PATCH("/users/:id/ban", h.Users.ToggleBan)

		dashboard.GET("/routes", h.Routes.ListRoutes)
		dashboard.POST("/routes", h.Routes.CreateRoute)
		dashboard.PUT("/routes/:id", h.Routes.UpdateRoute)
		dashboard.DELETE("/routes/:id", h.Routes.DeleteRoute)

		dashboard.GET("/withdrawals", h.Withdrawals.ListWithdrawals)
		dashboard.POST("/withdrawals/:id/approve", h.Withdrawals.ApproveWithdrawal)
		dashboard.POST("/withdrawals/:id/reject", h.Withdrawals.RejectWithdrawal)

		dashboard.GET("/tickets", h.Tickets.ListTickets)
		dashboard.GET("/tickets/:id", h.Tickets.GetTicket)
		dashboard.POST("/tickets/:id/respond", h.Tickets.RespondTicket)

		dashboard.GET("/wallet", h.Wallet.LookupWallet)
		dashboard.POST("/wallet/adjust", h.Wallet.AdjustWallet)

		dashboard.GET("/settings/profile", h.Settings.GetProfile)
		dashboard.PUT("/settings/profile", h.Settings.UpdateProfile)
		dashboard.PUT("/settings/password", h.Settings.ChangePassword)
	}

	if h.Aggregator != nil {
		admin := r.Group("/admin")
		admin.Use(sessionRequired, middleware.AdminRequired())
		{
			admin.GET("/analytics", h.Aggregator.GetAnalytics)
		}
	}
}
