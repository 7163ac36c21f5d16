package attendance

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("",
			authz.AuthorizeList(ev, authz.ResourceAttendance),
			handler.GetAll,
		)
		attendances.GET("/child/:childId",
			authz.AuthorizeChild(ev, authz.ResourceAttendance, authz.ActionRead),
			handler.GetByChild,
		)
		attendances.POST("/check-in",
			authz.Authorize(ev, authz.ResourceAttendance, authz.ActionCreate),
			handler.CheckIn,
		)
		attendances.POST("/check-out",
			authz.Authorize(ev, authz.ResourceAttendance, authz.ActionUpdate),
			handler.CheckOut,
		)
		attendances.POST("/absence",
			authz.Authorize(ev, authz.ResourceAttendance, authz.ActionCreate),
			handler.RecordAbsence,
		)
		attendances.PATCH("/:id",
			authz.Authorize(ev, authz.ResourceAttendance, authz.ActionUpdate),
			handler.Update,
		)
	}
}
