// File: internal/middleware/session.go
package middleware

import (
	"context"

	"credential_store_backend/internal/common"
	"credential_store_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionUserKey is the context key for storing the user of the active session.
const SessionUserKey = "sessionUser"

// SessionReader resolves the active session. It is implemented by *auth.SessionManager.
type SessionReader interface {
	CurrentSession(ctx context.Context) (*user.User, bool, error)
}

// RequireSession creates a Gin middleware that rejects requests while nobody is logged in.
func RequireSession(sessions SessionReader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok, err := sessions.CurrentSession(c.Request.Context())
		if err != nil {
			logger.Error("Failed to resolve active session", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}
		if !ok {
			logger.Debug("No active session", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Log in to access this resource."))
			return
		}

		c.Set(SessionUserKey, u)
		logger.Debug("Session user resolved", zap.String("userID", u.ID.String()))
		c.Next()
	}
}

// GetSessionUserFromContext retrieves the session user stored by RequireSession.
// Returns nil if the middleware did not run.
func GetSessionUserFromContext(c *gin.Context) *user.User {
	val, exists := c.Get(SessionUserKey)
	if !exists {
		return nil
	}
	u, ok := val.(*user.User)
	if !ok {
		return nil
	}
	return u
}
