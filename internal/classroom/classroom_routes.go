package classroom

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	classrooms := r.Group("/classrooms")
	classrooms.Use(middleware.AuthMiddleware())
	{
		classrooms.GET("",
			authz.Authorize(ev, authz.ResourceClassroom, authz.ActionRead),
			handler.GetAll,
		)
		classrooms.GET("/:id",
			authz.Authorize(ev, authz.ResourceClassroom, authz.ActionRead),
			handler.GetById,
		)
		classrooms.POST("",
			authz.Authorize(ev, authz.ResourceClassroom, authz.ActionCreate),
			handler.Create,
		)
		classrooms.PATCH("/:id",
			authz.Authorize(ev, authz.ResourceClassroom, authz.ActionUpdate),
			authz.AuthorizeList(ev, authz.ResourceClassroom),
			handler.Update,
		)
		classrooms.DELETE("/:id",
			authz.Authorize(ev, authz.ResourceClassroom, authz.ActionDelete),
			handler.Delete,
		)
	}
}
