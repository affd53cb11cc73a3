package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID           primitive.ObjectID `bson:"_id"`
	Order_id     string             `json:"order_id"`
	Table_id     *string            `json:"table_id" validate:"required"`
	Staff_id     *string            `json:"staff_id" validate:"required"`
	Total_amount float64            `json:"total_amount"` // always the sum of the order's item totals
	Status       string             `json:"status"`       // Active, Completed or Cancelled
	Order_date   time.Time          `json:"order_date"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
