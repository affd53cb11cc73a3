package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-restaurant-billing/models"
)

func GetAllStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		staff, err := staffService.List(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, staff)
	}
}

func GetActiveStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		staff, err := staffService.ListActive(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, staff)
	}
}

func GetStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		staff, err := staffService.Get(ctx, c.Param("staff_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, staff)
	}
}

func CreateStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var staff models.Staff
		if err := c.BindJSON(&staff); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&staff); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		address := ""
		if staff.Address != nil {
			address = *staff.Address
		}
		staffId, err := staffService.Add(ctx, *staff.Name, *staff.Email, address, *staff.Password)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"staff_id": staffId})
	}
}

func UpdateStaffStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Status string `json:"status" validate:"required"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := staffService.SetStatus(ctx, c.Param("staff_id"), body.Status); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "staff status updated"})
	}
}

func DeleteStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		if err := staffService.Delete(ctx, c.Param("staff_id")); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "staff deleted"})
	}
}
