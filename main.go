package main

import (
	"log"
	"net/http"
	"os"

	"foodplatform/auth"
	"foodplatform/config"
	"foodplatform/handlers"
	"foodplatform/routes"
	"foodplatform/store"

	"github.com/gin-gonic/gin"
)

func main() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	st := store.New(db)
	authenticator := auth.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL, st)
	handler := handlers.New(st, authenticator)

	r := gin.Default()

	// CORS for the SPA frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering Platform API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, handler, authenticator)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
