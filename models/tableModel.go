package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Table struct {
	ID           primitive.ObjectID `bson:"_id"`
	Table_id     string             `json:"table_id"`
	Table_number *string            `json:"table_number" validate:"required"`
	Capacity     *int               `json:"capacity" validate:"required,min=1"`
	Status       string             `json:"status"` // Vacant, Occupied or Reserved
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
