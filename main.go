package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-restaurant-billing/controllers"
	"go-restaurant-billing/database"
	"go-restaurant-billing/routes"
	"go-restaurant-billing/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	var s store.Store
	if os.Getenv("MONGODB_URI") != "" {
		client := database.DBinstance()
		s = store.NewMongo(client)
	} else {
		log.Println("MONGODB_URI not set, running with the in-memory store")
		s = store.NewMemory()
	}
	controllers.Init(s)

	router := gin.New()
	router.Use(gin.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.TableRoutes(router)
	routes.StaffRoutes(router)
	routes.MenuRoutes(router)
	routes.OrderRoutes(router)
	routes.BillRoutes(router)
	router.GET("/ws", controllers.HandleWebSocket())

	router.Run(":" + port)
}
