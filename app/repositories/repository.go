// Package repositories defines the storage interfaces the workflow engine
// depends on, plus their MongoDB implementations and in-memory doubles for
// tests. Handlers never touch a collection directly; everything goes through
// these interfaces so storage can be swapped out.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// Collection names in the marketplace database.
const (
	UsersCollection  = "users"
	PlantsCollection = "plants"
	OrdersCollection = "orders"
)

// UserRepository handles the users collection.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

// PlantRepository handles the plants collection.
type PlantRepository interface {
	All(ctx context.Context) ([]models.Plant, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Plant, error)
	Insert(ctx context.Context, plant *models.Plant) (primitive.ObjectID, error)

	// AdjustQuantity applies a relative delta as a single atomic update:
	// increase adds delta, otherwise delta is subtracted with the result
	// floored at zero. Returns the matched and modified counts.
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int, increase bool) (matched, modified int64, err error)
}

// OrderRepository handles the orders collection.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	// HistoryByEmail returns the customer's orders enriched with each
	// plant's name, image, and category via the plants join. Orders whose
	// plant reference matches no stored plant are excluded.
	HistoryByEmail(ctx context.Context, email string) ([]models.EnrichedOrder, error)
}
