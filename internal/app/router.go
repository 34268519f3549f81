package app

import (
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/middleware"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerAuthorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Course browsing is open; unpublished courses stay hidden unless the
		// optional token belongs to the author or an admin.
		public.GET("/courses", c.course.ListPublished)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/courses/:id/outline", middleware.TryAuthMiddleware(cfg), c.course.Outline)
		public.GET("/courses/:id/lessons/:key", middleware.TryAuthMiddleware(cfg), c.course.GetLesson)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/courses/:id/progress", c.progress.Get)
	rg.POST("/courses/:id/progress/video-ended", c.progress.MarkVideoEnded)

	rg.POST("/courses/:id/lessons/:key/exercises/:index/session", c.exercise.Open)
	rg.GET("/exercise-sessions/:token", c.exercise.Get)
	rg.PUT("/exercise-sessions/:token/answers", c.exercise.SaveAnswer)
	rg.POST("/exercise-sessions/:token/submit", c.exercise.Submit)
}

func (a *App) registerAuthorRoutes(rg *gin.RouterGroup, c *controllers) {
	author := rg.Group("/authoring")
	author.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		author.POST("/courses", c.course.Create)
		author.PUT("/courses/:id", c.course.Update)
		author.GET("/courses", c.course.ListMine)

		author.POST("/media", c.media.Upload)
		author.GET("/media", c.media.ListMine)
		author.GET("/media/:id", c.media.Get)
	}
}
