package user

import (
	"credential_store_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	store  *CredentialStore
	logger *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(store *CredentialStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.Named("UserHandler"),
	}
}

// RegisterRoutes sets up the routes for user operations. Every route requires an active session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	userGroup := router.Group("/users", sessionMW)
	{
		userGroup.GET("", h.listUsers)
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)

	users, total, err := h.store.List(c.Request.Context(), common.Offset(page, pageSize), pageSize)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		common.RespondWithError(c, err)
		return
	}

	common.RespondPaginated(c, "Users retrieved successfully.", ToUserResponses(users), common.NewPagination(total, page, pageSize))
}
