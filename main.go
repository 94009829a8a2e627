package main

import (
	"log"

	"ladderquiz/config"
	"ladderquiz/handlers"
	"ladderquiz/middleware"
	"ladderquiz/models"
	"ladderquiz/routes"
	"ladderquiz/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Game{},
		&models.GameQuestion{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// At most one unfinished game per user; the create transaction relies
	// on this index to survive double-create races.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_games_one_active_per_user
		ON games (user_id) WHERE finished_at IS NULL AND deleted_at IS NULL`).Error
	if err != nil {
		log.Fatal("Failed to create active-game index:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	questionService := services.NewQuestionService(db)
	gameService := services.NewGameService(db, redisClient, questionService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, gameHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
