package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_item_id string             `json:"order_item_id"`
	Order_id      string             `json:"order_id"`
	Menu_id       *string            `json:"menu_id" validate:"required"`
	Quantity      *int               `json:"quantity" validate:"required,min=1"`
	Unit_price    *float64           `json:"unit_price"` // menu price captured when the item was added
	Total         float64            `json:"total"`      // quantity x unit_price
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
}
