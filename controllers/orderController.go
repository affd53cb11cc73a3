package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-restaurant-billing/models"
)

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := orderService.List(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetActiveOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := orderService.ListActive(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type OrderWithItems struct {
	Order      models.Order       `json:"order"`
	OrderItems []models.OrderItem `json:"order_items"`
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		order, items, err := orderService.Get(ctx, c.Param("order_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, OrderWithItems{Order: *order, OrderItems: items})
	}
}

func GetActiveOrderForTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId, err := orderService.ActiveOrderForTable(ctx, c.Param("table_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": orderId})
	}
}

func CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&order); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		orderId, err := orderService.Create(ctx, *order.Table_id, *order.Staff_id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		notifyOrderCreated(orderId, *order.Table_id)
		c.JSON(http.StatusOK, gin.H{"order_id": orderId})
	}
}

func CancelOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		if err := orderService.Cancel(ctx, orderId); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
