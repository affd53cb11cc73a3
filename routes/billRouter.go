package routes

import (
	controller "go-restaurant-billing/controllers"

	"github.com/gin-gonic/gin"
)

func BillRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/bills", controller.GetBills())
	incomingRoutes.GET("/bills/unpaid", controller.GetUnpaidBills())
	incomingRoutes.GET("/bills/:bill_id", controller.GetBill())
	incomingRoutes.POST("/bills", controller.GenerateBill())
	incomingRoutes.PATCH("/bills/:bill_id/pay", controller.ProcessPayment())
	incomingRoutes.GET("/dailysales/:date", controller.GetDailySales())
}
