package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user can hold. New accounts default to RoleCustomer.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// User is an identity record. Email is the stable identity key; orders are
// joined to their owner through it.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      string             `bson:"role" json:"role"`
	TimeStamp int64              `bson:"timeStamp" json:"timeStamp"`
}

// UserRequest is the body of POST /users/{email}. The email in the path is
// authoritative; the body carries optional profile fields.
type UserRequest struct {
	Name  string `json:"name" validate:"omitempty,max=255"`
	Image string `json:"image" validate:"omitempty,url"`
}

// TokenRequest is the body of POST /jwt: the identity claim to embed in the
// session token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=customer seller admin"`
}
