package app

import (
	"manor_backend/docs"
	"manor_backend/internal/config"
	"manor_backend/internal/middleware"
	"manor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: registration, login, leaderboard (guests can browse it).
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/leaderboard", middleware.TryAuthMiddleware(cfg), c.leaderboard.GetLeaderboard)
	}

	// Everything else needs a logged-in account.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		game := authGroup.Group("/game")
		{
			game.POST("/start", c.game.StartGame)
			game.GET("/state", c.game.GetState)
			game.GET("/rooms/:stage", c.game.GetRoom)
			game.POST("/rooms/:stage/submit", c.game.SubmitRoom)
			game.GET("/success", c.game.Success)
			game.GET("/attempts", c.game.GetAttempts)
			game.POST("/restart", c.game.Restart)
		}

		saves := authGroup.Group("/saves")
		{
			saves.POST("", c.save.SaveGame)
			saves.POST("/quick", c.save.QuickSave)
			saves.GET("", c.save.ListSaves)
			saves.POST("/:id/load", c.save.LoadGame)
			saves.DELETE("/:id", c.save.DeleteSave)
		}
	}
}
