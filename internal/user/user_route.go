package user

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	ev *authz.Evaluator,
	logger *zap.Logger,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionRead),
			handler.GetById,
		)

		users.POST("",
			middleware.RateLimitByUser(0.1, 1),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionCreate),
			handler.Create,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionUpdate),
			handler.ToggleStatus,
		)

		// Any signed-in user changes their own password
		users.POST("/change-password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.ExtractUserID(),
			handler.ChangePassword,
		)

		// Admin reset of another user's password
		users.POST("/:id/reset-password",
			middleware.RateLimitByUser(0.5, 2),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionUpdate),
			handler.ResetPassword,
		)
	}
}
