// Package services implements the order, inventory, and user workflows on
// top of the storage interfaces. Controllers translate the sentinel errors
// below into HTTP status codes.
package services

import "errors"

var (
	// ErrPlantNotFound: the referenced plant does not exist.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrOrderNotFound: the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderShipped: cancellation attempted after shipment.
	ErrOrderShipped = errors.New("order already shipped")
)
