package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Staff struct {
	ID         primitive.ObjectID `bson:"_id"`
	Staff_id   string             `json:"staff_id"`
	Name       *string            `json:"name" validate:"required,min=2,max=100"`
	Email      *string            `json:"email" validate:"email,required"`
	Address    *string            `json:"address"`
	Password   *string            `json:"password" validate:"required,min=6"`
	Status     string             `json:"status"` // Active or Inactive
	Created_at time.Time          `json:"created_at"`
	Updated_at time.Time          `json:"updated_at"`
}
