package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "wallet-keystone/docs"
	"wallet-keystone/internal/handler"
	"wallet-keystone/internal/handler/response"
	"wallet-keystone/pkg/monitor"
	"wallet-keystone/pkg/validator"
)

// Handlers 路由依赖的业务 handler
type Handlers struct {
	Keystone *handler.KeystoneHandler
	Recovery *handler.RecoveryHandler
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(h Handlers) *gin.Engine {
	// 0. 初始化监控指标和参数校验规则
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		ks := api.Group("/keystone")
		ks.GET("/state", h.Keystone.State)
		ks.POST("/connect", h.Keystone.Connect)
		ks.POST("/disconnect", h.Keystone.Disconnect)
		ks.POST("/signin", h.Keystone.SignIn)
		ks.POST("/reset", h.Keystone.Reset)
		ks.POST("/modal/show", h.Keystone.ShowModal)
		ks.POST("/modal/hide", h.Keystone.HideModal)
		ks.POST("/accounts", h.Keystone.RegisterAccount)
		ks.POST("/accounts/:accountId/import", h.Keystone.ImportAccount)

		api.GET("/recovery/:accountId", h.Recovery.Get)
	}

	return r
}
