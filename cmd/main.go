package main

import (
	"log"

	"github.com/joho/godotenv"

	"jpskating.in/store-api/internal/router"
	"jpskating.in/store-api/pkg/ai"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	mongo.SeedDemoData()
	ai.InitializeAIService()
	router.InitEngine()
	router.InitializeRoutes()

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
