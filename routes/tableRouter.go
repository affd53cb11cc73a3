package routes

import (
	controller "go-restaurant-billing/controllers"

	"github.com/gin-gonic/gin"
)

func TableRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/tables", controller.GetTables())
	incomingRoutes.GET("/tables/:table_id", controller.GetTable())
	incomingRoutes.GET("/tablesbystatus/:status", controller.GetTablesByStatus())
	incomingRoutes.POST("/tables", controller.CreateTable())
	incomingRoutes.PATCH("/tables/:table_id/status", controller.UpdateTableStatus())
	incomingRoutes.PATCH("/tables/:table_id/capacity", controller.UpdateTableCapacity())
	incomingRoutes.DELETE("/tables/:table_id", controller.DeleteTable())
}
