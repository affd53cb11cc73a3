package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bill struct {
	ID             primitive.ObjectID `bson:"_id"`
	Bill_id        string             `json:"bill_id"`
	Order_id       string             `json:"order_id" validate:"required"`
	Staff_id       string             `json:"staff_id" validate:"required"`
	Total          float64            `json:"total"` // order total copied at generation time
	Payment_method *string            `json:"payment_method" validate:"required,eq=Cash|eq=Card|eq=E-Wallet"`
	Payment_status *string            `json:"payment_status"` // Unpaid or Paid
	Bill_date      time.Time          `json:"bill_date"`
	Created_at     time.Time          `json:"created_at"`
	Updated_at     time.Time          `json:"updated_at"`
}
