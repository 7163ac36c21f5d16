package auth

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, ev *authz.Evaluator) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(0.1, 2),
			authz.Authorize(ev, authz.ResourceUser, authz.ActionCreate),
			handler.Register,
		)
	}
}
