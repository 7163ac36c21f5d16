package medical

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	alerts := r.Group("/medical-alerts")
	alerts.Use(middleware.AuthMiddleware())
	{
		alerts.GET("",
			authz.AuthorizeList(ev, authz.ResourceMedicalAlert),
			handler.GetAll,
		)
		alerts.GET("/child/:childId",
			authz.AuthorizeChild(ev, authz.ResourceMedicalAlert, authz.ActionRead),
			handler.GetByChild,
		)
		alerts.POST("",
			authz.Authorize(ev, authz.ResourceMedicalAlert, authz.ActionCreate),
			handler.Create,
		)
		alerts.PATCH("/:id",
			authz.Authorize(ev, authz.ResourceMedicalAlert, authz.ActionUpdate),
			handler.Update,
		)
	}
}
