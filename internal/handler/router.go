package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"payment-gateway/internal/middleware"
)

// NewRouter wires the middleware chain and the API surface.
func NewRouter(log *zap.Logger, auth middleware.Authenticator, orders *OrderHandler, payments *PaymentHandler, health *HealthHandler, test *TestHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Metrics())

	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/test/merchant", test.GetTestMerchant)

		authed := v1.Group("", middleware.Auth(auth))
		{
			authed.POST("/orders", orders.CreateOrder)
			authed.GET("/orders/:order_id", orders.GetOrder)
			authed.POST("/payments", payments.CreatePayment)
			authed.GET("/payments/:payment_id", payments.GetPayment)
		}
	}

	return router
}
