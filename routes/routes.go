package routes

import (
	"net/http"

	"ladderquiz/handlers"
	"ladderquiz/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Game routes
			games := protected.Group("/games")
			{
				games.POST("", gameHandler.CreateGame)
				games.GET("/:id", gameHandler.GetGame)
				games.PUT("/:id/answer", gameHandler.Answer)
				games.PUT("/:id/take_money", gameHandler.TakeMoney)
				games.PUT("/:id/help", gameHandler.Help)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
