package notification

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("",
			authz.Authorize(ev, authz.ResourceNotification, authz.ActionRead),
			handler.GetMine,
		)
		notifications.GET("/unread-count",
			authz.Authorize(ev, authz.ResourceNotification, authz.ActionRead),
			handler.UnreadCount,
		)
		notifications.PATCH("/:id/read",
			authz.Authorize(ev, authz.ResourceNotification, authz.ActionUpdate),
			handler.MarkRead,
		)
		notifications.POST("/read-all",
			authz.Authorize(ev, authz.ResourceNotification, authz.ActionUpdate),
			handler.MarkAllRead,
		)
	}
}
