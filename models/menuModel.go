package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Menu struct {
	ID           primitive.ObjectID `bson:"_id"`
	Menu_id      string             `json:"menu_id"`
	Name         *string            `json:"name" validate:"required,min=2,max=100"`
	Price        *float64           `json:"price" validate:"required,gt=0"`
	Category     *string            `json:"category" validate:"required,eq=Food|eq=Beverage|eq=Dessert"`
	Availability string             `json:"availability"` // Available or Unavailable
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
