package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"notes_service/internal/database"
	"notes_service/internal/handlers"
	"notes_service/internal/kafka"
	"notes_service/internal/middleware"
	"notes_service/internal/redis"
	"notes_service/internal/router"
	"notes_service/internal/services"
	"notes_service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.InitLogger()

	// Initialize database
	db, err := database.Connect(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Kafka producer is optional; without brokers the service simply
	// stops emitting activity events.
	var producer *kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewProducer(strings.Split(brokers, ","))
		defer producer.Close()
	}

	// Redis backs token revocation; without it logout is a no-op.
	var tokens *redis.Service
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		tokens = redis.NewService(addr, os.Getenv("REDIS_PASSWORD"), 0)
	}

	// Setup Gin router
	r := gin.New()
	r.Use(middleware.LoggerMiddleware())
	r.Use(gin.Recovery())

	middleware.SetupPrometheus(r)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Initialize handlers
	noteHandler := handlers.NewNoteHandler(services.NewNoteService(db, producer))
	userHandler := handlers.NewUserHandler(services.NewUserService(db), tokens)

	router.SiteRoutes(r)

	api := r.Group("/api")
	router.AuthRoutes(api, userHandler)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	router.NoteRoutes(protected, noteHandler)
	router.UserRoutes(protected, userHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
