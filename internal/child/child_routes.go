package child

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	children := r.Group("/children")
	children.Use(middleware.AuthMiddleware())
	{
		children.GET("",
			authz.AuthorizeList(ev, authz.ResourceChild),
			handler.GetAll,
		)
		children.GET("/:id",
			authz.Authorize(ev, authz.ResourceChild, authz.ActionRead),
			authz.AuthorizeList(ev, authz.ResourceChild),
			handler.GetById,
		)
		children.POST("",
			authz.Authorize(ev, authz.ResourceChild, authz.ActionCreate),
			handler.Create,
		)
		children.PATCH("/:id",
			authz.Authorize(ev, authz.ResourceChild, authz.ActionUpdate),
			authz.AuthorizeList(ev, authz.ResourceChild),
			handler.Update,
		)
		children.DELETE("/:id",
			authz.Authorize(ev, authz.ResourceChild, authz.ActionDelete),
			handler.Delete,
		)
	}
}
