package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-restaurant-billing/models"
)

func GetBills() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		bills, err := billingService.List(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, bills)
	}
}

func GetUnpaidBills() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		bills, outstanding, err := billingService.ListUnpaid(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"bills":        bills,
			"total_unpaid": outstanding,
			"count":        len(bills),
		})
	}
}

type BillViewFormat struct {
	Bill       models.Bill        `json:"bill"`
	OrderItems []models.OrderItem `json:"order_items"`
}

func GetBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		bill, err := billingService.Get(ctx, c.Param("bill_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		_, items, err := orderService.Get(ctx, bill.Order_id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, BillViewFormat{Bill: *bill, OrderItems: items})
	}
}

func GenerateBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var bill models.Bill
		if err := c.BindJSON(&bill); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&bill); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		billId, err := billingService.Generate(ctx, bill.Order_id, bill.Staff_id, *bill.Payment_method)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bill_id": billId})
	}
}

func ProcessPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		billId := c.Param("bill_id")
		if err := billingService.ProcessPayment(ctx, billId); err != nil {
			abortWithError(c, err)
			return
		}
		notifyBillPaid(ctx, billId)
		c.JSON(http.StatusOK, gin.H{"message": "payment processed"})
	}
}

func GetDailySales() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		total, err := billingService.DailySales(ctx, c.Param("date"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":        c.Param("date"),
			"total_sales": total,
		})
	}
}
