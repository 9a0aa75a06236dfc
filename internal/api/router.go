package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/handler"
	"github.com/jengzang/disease-risk-backend-go/internal/metrics"
	"github.com/jengzang/disease-risk-backend-go/internal/middleware"
)

// Handlers 汇总路由需要的处理器
type Handlers struct {
	Occurrence *handler.OccurrenceHandler
	Risk       *handler.RiskHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
}

// SetupRouter 设置路由；limiter 为 nil 时不限流
func SetupRouter(h Handlers, limiter *middleware.RateLimiter, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", h.Health.GetHealth)

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiter))
	{
		api.GET("/diseases", h.Occurrence.ListDiseases)

		// 病例记录
		entries := api.Group("/entries")
		{
			entries.GET("", h.Occurrence.ListEntries)
			entries.POST("", h.Occurrence.CreateEntry)
			entries.GET("/:id", h.Occurrence.GetEntry)
			entries.GET("/:id/risk", h.Risk.GetEntryRisk)
			entries.GET("/:id/predictions", h.Risk.GetEntryPredictions)
		}

		// 风险地图
		api.GET("/risk-map/:lat/:lng/:disease", h.Risk.GetRiskMap)

		// 风险模型
		model := api.Group("/model")
		{
			model.GET("", h.Risk.GetModel)
			model.POST("/train", h.Risk.TrainModel)
		}

		// 统计面板
		api.GET("/dashboard", h.Stats.GetDashboard)
	}

	return r
}
