package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Plant is a catalog item. Quantity is only ever mutated through the
// relative-delta adjustment operation, never overwritten.
type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Seller      *SellerInfo        `bson:"seller,omitempty" json:"seller,omitempty"`
}

// SellerInfo is the plant's seller sub-record.
type SellerInfo struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// PlantRequest is the body of POST /plants.
type PlantRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Category    string  `json:"category" validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// StockAdjustmentRequest is the body of PATCH /plants/quantity/{id}.
// Status "increase" adds the delta; any other value (the default/decrease
// path) subtracts it.
type StockAdjustmentRequest struct {
	QuantityUpdate int    `json:"quantityUpdate" validate:"required,gte=1"`
	Status         string `json:"status" validate:"omitempty,max=50"`
}

// Increase reports whether the adjustment adds to the current quantity.
func (r StockAdjustmentRequest) Increase() bool {
	return r.Status == "increase"
}
