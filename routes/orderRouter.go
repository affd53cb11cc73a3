package routes

import (
	"go-restaurant-billing/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controllers.GetOrders())
	incomingRoutes.GET("/orders/active", controllers.GetActiveOrders())
	incomingRoutes.GET("/orders/:order_id", controllers.GetOrder())
	incomingRoutes.GET("/activeorderfortable/:table_id", controllers.GetActiveOrderForTable())
	incomingRoutes.POST("/orders", controllers.CreateOrder())
	incomingRoutes.PATCH("/orders/:order_id/cancel", controllers.CancelOrder())
	incomingRoutes.POST("/orders/:order_id/items", controllers.AddOrderItem())
	incomingRoutes.DELETE("/orderitems/:order_item_id", controllers.RemoveOrderItem())
}
