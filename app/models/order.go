package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order lifecycle statuses. StatusShipped gates cancellation: once a plant
// ships, the order can no longer be deleted.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// Order is a purchase record. PlantID is stored as the plant's ObjectID hex
// string; the history aggregation coerces it back to an ObjectID for the
// cross-collection join.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PlantID   string             `bson:"plantId" json:"plantId"`
	Customer  CustomerInfo       `bson:"customer" json:"customer"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Status    string             `bson:"status" json:"status"`
	TimeStamp int64              `bson:"timeStamp" json:"timeStamp"`
}

// CustomerInfo is the order's customer sub-record. Email is the ownership
// key used for history retrieval.
type CustomerInfo struct {
	Email string `bson:"email" json:"email" validate:"required,email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	PlantID  string       `json:"plantId" validate:"required,len=24,hexadecimal"`
	Customer CustomerInfo `json:"customer" validate:"required"`
	Price    float64      `json:"price" validate:"gte=0"`
	Quantity int          `json:"quantity" validate:"required,gte=1"`
	Address  string       `json:"address" validate:"omitempty,max=500"`
	Status   string       `json:"status" validate:"omitempty,oneof=Pending Processing Shipped Delivered"`
}

// EnrichedOrder is one row of a customer's order history: the order fields
// flattened together with the joined plant's name, image, and category. The
// nested plant document never reaches the client.
type EnrichedOrder struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	PlantID   primitive.ObjectID `bson:"plantId" json:"plantId"`
	Customer  CustomerInfo       `bson:"customer" json:"customer"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Status    string             `bson:"status" json:"status"`
	TimeStamp int64              `bson:"timeStamp" json:"timeStamp"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Category  string             `bson:"category" json:"category"`
}
