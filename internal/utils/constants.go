package utils

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	ErrUnauthorized   = "Authentication required"
	ErrForbidden      = "Admin access required"
	ErrRateLimited    = "Too many requests, please slow down"
	ErrInternalServer = "Internal server error"
)

// Context keys set by the session middleware.
const (
	ContextSessionID = "session_id"
	ContextAdminUser = "admin_user"
	ContextRequestID = "request_id"
)

// Recent-activity limits on the dashboard landing page.
const (
	RecentActivityLimit = 5
	RecentRoutesLimit   = 5
)
