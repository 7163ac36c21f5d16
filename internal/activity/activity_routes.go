package activity

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	activities := r.Group("/activities")
	activities.Use(middleware.AuthMiddleware())
	{
		activities.GET("",
			authz.AuthorizeList(ev, authz.ResourceActivity),
			handler.GetAll,
		)
		activities.GET("/child/:childId",
			authz.AuthorizeChild(ev, authz.ResourceActivity, authz.ActionRead),
			handler.GetByChild,
		)
		activities.POST("",
			authz.Authorize(ev, authz.ResourceActivity, authz.ActionCreate),
			handler.Create,
		)
	}
}
