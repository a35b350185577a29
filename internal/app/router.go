package app

import (
	"time"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/middleware"
	"ui_review_backend/pkg/monitoring"
	"ui_review_backend/pkg/security"

	"ui_review_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func securityMiddlewares(cfg *config.Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		security.CORS(cfg.CORS.AllowedOrigins),
		security.Secure(),
		security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
	}
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.POST("/submissions", c.submission.Submit)

		api.GET("/feedback", c.feedback.GetFeedback)
		api.GET("/feedback/condition", c.feedback.GetWorkerCondition)

		api.GET("/tasks/next", c.task.GetNextTask)
		api.GET("/tasks/available", c.task.GetAvailableTasks)

		api.POST("/access", c.access.RecordAccess)

		admin := api.Group("/admin")
		{
			admin.POST("/login", c.admin.Login)
			admin.POST("/logout", c.admin.Logout)

			guarded := admin.Group("")
			guarded.Use(middleware.AdminAuthMiddleware(cfg))
			{
				guarded.GET("/submissions", c.admin.ListSubmissions)
				guarded.POST("/submissions/update", c.admin.UpdateScores)
				guarded.POST("/submissions/grade", c.admin.GradeBatch)
				guarded.POST("/submissions/:id/evaluate", c.admin.EvaluateSubmission)
				guarded.PUT("/submissions/evaluate", c.admin.EvaluateBatch)
				guarded.POST("/submissions/evaluate/day", c.admin.EvaluateDay)
			}
		}
	}
}
