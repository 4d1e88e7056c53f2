package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserEmail string             `json:"user_email" bson:"userEmail"`
	ProductID primitive.ObjectID `json:"product_id" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Product   *Product           `json:"product,omitempty" bson:"product,omitempty"`
}
