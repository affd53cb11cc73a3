package routes

import (
	controller "go-restaurant-billing/controllers"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menus", controller.GetMenus())
	incomingRoutes.GET("/menus/available", controller.GetAvailableMenus())
	incomingRoutes.GET("/menus/search", controller.SearchMenus())
	incomingRoutes.GET("/menusbycategory/:category", controller.GetMenusByCategory())
	incomingRoutes.GET("/menus/:menu_id", controller.GetMenu())
	incomingRoutes.POST("/menus", controller.CreateMenu())
	incomingRoutes.PATCH("/menus/:menu_id/price", controller.UpdateMenuPrice())
	incomingRoutes.PATCH("/menus/:menu_id/availability", controller.UpdateMenuAvailability())
	incomingRoutes.DELETE("/menus/:menu_id", controller.DeleteMenu())
}
