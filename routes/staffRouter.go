package routes

import (
	controller "go-restaurant-billing/controllers"

	"github.com/gin-gonic/gin"
)

func StaffRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/staff", controller.GetAllStaff())
	incomingRoutes.GET("/staff/active", controller.GetActiveStaff())
	incomingRoutes.GET("/staff/:staff_id", controller.GetStaff())
	incomingRoutes.POST("/staff", controller.CreateStaff())
	incomingRoutes.PATCH("/staff/:staff_id/status", controller.UpdateStaffStatus())
	incomingRoutes.DELETE("/staff/:staff_id", controller.DeleteStaff())
}
