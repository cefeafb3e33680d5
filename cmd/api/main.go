package main

import (
	"context"
	"log"
	"os"

	_ "github.com/abdalla1234567890/chatbot/api/swagger" // swagger docs
	"github.com/abdalla1234567890/chatbot/internal/agent"
	"github.com/abdalla1234567890/chatbot/internal/database"
	"github.com/abdalla1234567890/chatbot/internal/handler"
	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Ordering Assistant API
// @version         1.0
// @description     Chat-based construction material ordering with code login and an admin console.
// @host            localhost:8000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	db, err := database.NewConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Database seeding failed: %v", err)
	}

	// Gemini is optional: without a key the chat endpoint answers with a
	// maintenance message instead of refusing to start.
	var responder agent.Responder
	gemini, err := agent.NewGemini(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Printf("WARNING: assistant disabled: %v", err)
	} else {
		defer gemini.Close()
		responder = gemini
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo, auditRepo)
	locationService := service.NewLocationService(locationRepo, userRepo, auditRepo)
	chatService := service.NewChatService(responder, locationService, orderRepo, auditRepo, txManager, wsHub)
	orderService := service.NewOrderService(orderRepo)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(db)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService, userRepo)
	locationHandler := handler.NewLocationHandler(locationService, userRepo)
	chatHandler := handler.NewChatHandler(chatService, userRepo)
	orderHandler := handler.NewOrderHandler(orderService, userRepo)
	auditHandler := handler.NewAuditHandler(auditService, userRepo)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, userRepo)

	// Set up Gin Router
	router := gin.Default()
	router.Use(middleware.RequestLanguage())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"} // Web client URL
	if origin := os.Getenv("WEB_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "Accept-Language"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "service": "ordering-assistant"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	locationHandler.RegisterRoutes(router.Group(""))
	chatHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
