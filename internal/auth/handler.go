// File: internal/auth/handler.go
package auth

import (
	"errors"

	"credential_store_backend/internal/common"
	"credential_store_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	sessions *SessionManager
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(sessions *SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.POST("/password-reset", h.resetPassword)
		authGroup.GET("/session", h.currentSession)
	}
}

// bindJSON decodes the body into req and writes the error response when that fails.
func (h *Handler) bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn(op+": Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if !h.bindJSON(c, &req, "Register") {
		return
	}

	u, err := h.sessions.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Registration successful. Please log in.", gin.H{"user": user.ToUserResponse(u)})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req, "Login") {
		return
	}

	outcome, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if outcome.Status != LoginSuccess {
		common.RespondWithError(c, outcome.Err())
		return
	}
	common.RespondOK(c, "Login successful.", gin.H{"user": user.ToUserResponse(outcome.User)})
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	common.RespondOK(c, "Logout successful.", nil)
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !h.bindJSON(c, &req, "Password reset") {
		return
	}

	if err := h.sessions.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Password has been reset. Please log in with your new password.", nil)
}

func (h *Handler) currentSession(c *gin.Context) {
	st, ok, err := h.sessions.State(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if !ok {
		common.RespondOK(c, "No active session.", SessionResponse{Authenticated: false})
		return
	}

	ur := user.ToUserResponse(st.User)
	startedAt := st.StartedAt
	common.RespondOK(c, "Active session.", SessionResponse{
		Authenticated: true,
		User:          &ur,
		StartedAt:     &startedAt,
	})
}
