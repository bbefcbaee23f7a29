package middleware

import (
	"errors"
	"net/http"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/services"
	"ecocruise-admin/internal/utils"
	"ecocruise-admin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SessionRequired resolves the dashboard session cookie and attaches the
// session to the request context. Requests without a valid session get a
// 401, which the frontend treats as a login redirect.
func SessionRequired(auth *services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrInvalidToken) {
				utils.UnauthorizedResponse(c)
			} else {
				utils.InternalServerErrorResponse(c)
			}
			c.Abort()
			return
		}

		c.Set(utils.ContextSessionID, session.ID)
		c.Set(utils.ContextAdminUser, session)
		c.Next()
	}
}

// AdminRequired double-checks the role on the stored session. Sessions are
// only ever created for admins, so this guards against stale records.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil || session.User.Role != models.RoleAdmin {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuditLog records every successful mutating request with the admin who
// issued it. Reads are not audited.
func AuditLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= 400 {
			return
		}
		session := SessionFrom(c)
		if session == nil {
			return
		}
		log.LogAdminAction(session.User.ID, c.Request.Method+" "+c.FullPath(), map[string]interface{}{
			"status": c.Writer.Status(),
		})
	}
}

// SessionFrom returns the session attached by SessionRequired, or nil.
func SessionFrom(c *gin.Context) *services.Session {
	value, ok := c.Get(utils.ContextAdminUser)
	if !ok {
		return nil
	}
	session, ok := value.(*services.Session)
	if !ok {
		return nil
	}
	return session
}
