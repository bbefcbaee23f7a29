package handlers

import (
	"errors"
	"net/http"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/middleware"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

// workspaceFor resolves the caller's controller workspace. A nil return
// means the 401 was already written.
func workspaceFor(c *gin.Context, registry *services.WorkspaceRegistry) *dashboard.Workspace {
	session := middleware.SessionFrom(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return nil
	}
	return registry.For(session)
}

// respondUpstreamError maps the upstream error taxonomy onto this API's
// responses. A 401 from upstream means the stored session cookie died, so
// the browser gets a 401 and redirects to login.
func respondUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upstream.ErrRateLimited):
		utils.RateLimitedResponse(c)
	case errors.Is(err, upstream.ErrUnauthorized):
		utils.UnauthorizedResponse(c)
	default:
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			utils.ErrorResponse(c, apiErr.StatusCode, "UPSTREAM_ERROR", apiErr.Message)
			return
		}
		utils.BadGatewayResponse(c, err.Error())
	}
}

// respondMutation translates a mutation result: validation failures are the
// caller's fault, not-found is 404, everything else follows the upstream
// taxonomy.
func respondMutation(c *gin.Context, m dashboard.Mutation, message string, data interface{}) {
	if !m.Failed() {
		if m.Noop() {
			utils.SuccessResponse(c, "No changes to submit", data)
			return
		}
		utils.SuccessResponse(c, message, data)
		return
	}
	respondDashboardError(c, m.Err)
}

func respondDashboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUserNotFound),
		errors.Is(err, dashboard.ErrRouteNotFound),
		errors.Is(err, dashboard.ErrTicketNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, dashboard.ErrTicketClosed):
		utils.ErrorResponse(c, http.StatusConflict, "TICKET_CLOSED", err.Error())
	case errors.Is(err, dashboard.ErrMissingFields),
		errors.Is(err, dashboard.ErrInvalidNumber),
		errors.Is(err, dashboard.ErrConfirmationRequired),
		errors.Is(err, dashboard.ErrNoUserLoaded),
		errors.Is(err, dashboard.ErrInvalidAmount),
		errors.Is(err, dashboard.ErrInvalidAction),
		errors.Is(err, dashboard.ErrProfileFieldsRequired),
		errors.Is(err, dashboard.ErrPasswordFieldsRequired),
		errors.Is(err, dashboard.ErrPasswordTooShort),
		errors.Is(err, dashboard.ErrPasswordMismatch):
		utils.BadRequestResponse(c, err.Error())
	default:
		respondUpstreamError(c, err)
	}
}
