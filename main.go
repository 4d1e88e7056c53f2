package main

import (
	"log"

	"prodigy-server/config"
	_ "prodigy-server/docs"
	"prodigy-server/middleware"
	"prodigy-server/routes"

	"github.com/gin-gonic/gin"
)

// @title Prodigy Server API
// @version 1.0
// @description Storefront backend: users, products, and shopping carts.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.InitRedis()
	defer config.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, config.DB)

	port := ":" + config.AppConfig.Port
	log.Printf("Prodigy Server is Running on Port: %s", config.AppConfig.Port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
