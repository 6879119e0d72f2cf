package repositories

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
)

// In-memory implementations of the repository interfaces. They back the
// service tests and let the server be exercised without a running MongoDB.
// Semantics mirror the Mongo implementations, including the decrement floor
// and the inner-join shape of the history aggregation.

// ─── Users ────────────────────────────────────────────────────────────────────

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by email
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.Email] = *user
	return user.ID, nil
}

// ─── Plants ───────────────────────────────────────────────────────────────────

type MemoryPlantRepository struct {
	mu     sync.RWMutex
	plants map[primitive.ObjectID]models.Plant
}

func NewMemoryPlantRepository() *MemoryPlantRepository {
	return &MemoryPlantRepository{plants: make(map[primitive.ObjectID]models.Plant)}
}

func (r *MemoryPlantRepository) All(_ context.Context) ([]models.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Plant, 0, len(r.plants))
	for _, p := range r.plants {
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryPlantRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plant, ok := r.plants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &plant, nil
}

func (r *MemoryPlantRepository) Insert(_ context.Context, plant *models.Plant) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if plant.ID.IsZero() {
		plant.ID = primitive.NewObjectID()
	}
	r.plants[plant.ID] = *plant
	return plant.ID, nil
}

func (r *MemoryPlantRepository) AdjustQuantity(_ context.Context, id primitive.ObjectID, delta int, increase bool) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plant, ok := r.plants[id]
	if !ok {
		return 0, 0, nil
	}

	before := plant.Quantity
	if increase {
		plant.Quantity += delta
	} else {
		plant.Quantity -= delta
		if plant.Quantity < 0 {
			plant.Quantity = 0
		}
	}
	r.plants[id] = plant

	var modified int64
	if plant.Quantity != before {
		modified = 1
	}
	return 1, modified, nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

// MemoryOrderRepository joins against a MemoryPlantRepository for history
// enrichment, mirroring the $lookup.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
	plants *MemoryPlantRepository
}

func NewMemoryOrderRepository(plants *MemoryPlantRepository) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[primitive.ObjectID]models.Order),
		plants: plants,
	}
}

func (r *MemoryOrderRepository) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.orders[order.ID] = *order
	return order.ID, nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return 0, nil
	}
	delete(r.orders, id)
	return 1, nil
}

func (r *MemoryOrderRepository) HistoryByEmail(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := []models.EnrichedOrder{}
	for _, order := range r.orders {
		if order.Customer.Email != email {
			continue
		}

		plantID, err := primitive.ObjectIDFromHex(order.PlantID)
		if err != nil {
			// The $toObjectId coercion fails the whole aggregation on a
			// malformed reference, so the double does too.
			return nil, fmt.Errorf("history: invalid plant reference %q: %w", order.PlantID, err)
		}

		plant, err := r.plants.FindByID(ctx, plantID)
		if err != nil {
			// Dangling reference: dropped by the unwind (inner join).
			continue
		}

		rows = append(rows, models.EnrichedOrder{
			ID:        order.ID,
			PlantID:   plantID,
			Customer:  order.Customer,
			Price:     order.Price,
			Quantity:  order.Quantity,
			Address:   order.Address,
			Status:    order.Status,
			TimeStamp: order.TimeStamp,
			Name:      plant.Name,
			Image:     plant.Image,
			Category:  plant.Category,
		})
	}
	return rows, nil
}
