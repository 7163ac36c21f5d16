package billing

import (
	"go-daycare/internal/authz"
	"go-daycare/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	ev *authz.Evaluator,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	{
		invoices.GET("", authz.AuthorizeList(ev, authz.ResourcePayment), handler.GetAll)
		invoices.GET("/:id", authz.Authorize(ev, authz.ResourcePayment, authz.ActionRead), handler.GetById)
		invoices.PATCH("/:id/status", authz.Authorize(ev, authz.ResourcePayment, authz.ActionUpdate), handler.UpdateStatus)
		invoices.POST("/discount/preview", authz.Authorize(ev, authz.ResourcePayment, authz.ActionCreate), handler.PreviewDiscount)

		if redisClient != nil {
			invoices.POST(
				"/generate",
				middleware.Idempotency(redisClient),
				authz.Authorize(ev, authz.ResourcePayment, authz.ActionCreate),
				handler.Generate,
			)
			invoices.POST(
				"/:id/pay",
				middleware.Idempotency(redisClient),
				authz.Authorize(ev, authz.ResourcePayment, authz.ActionPay),
				handler.Pay,
			)
		} else {
			invoices.POST("/generate", authz.Authorize(ev, authz.ResourcePayment, authz.ActionCreate), handler.Generate)
			invoices.POST("/:id/pay", authz.Authorize(ev, authz.ResourcePayment, authz.ActionPay), handler.Pay)
		}
	}
}
