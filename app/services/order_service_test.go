package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/services"
)

type orderFixture struct {
	plants  *repositories.MemoryPlantRepository
	orders  *repositories.MemoryOrderRepository
	svc     *services.OrderService
	plantID primitive.ObjectID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	plants := repositories.NewMemoryPlantRepository()
	orders := repositories.NewMemoryOrderRepository(plants)

	plantID, err := plants.Insert(context.Background(), &models.Plant{
		Name:     "Fiddle Leaf Fig",
		Category: "Indoor",
		Image:    "https://img.example.com/fig.jpg",
		Price:    39,
		Quantity: 5,
	})
	require.NoError(t, err)

	return &orderFixture{
		plants:  plants,
		orders:  orders,
		svc:     services.NewOrderService(orders, plants),
		plantID: plantID,
	}
}

func (f *orderFixture) request() models.OrderRequest {
	return models.OrderRequest{
		PlantID:  f.plantID.Hex(),
		Customer: models.CustomerInfo{Email: "carol@example.com", Name: "Carol"},
		Price:    39,
		Quantity: 1,
		Address:  "12 Garden Lane",
	}
}

func TestPlaceDefaultsToPending(t *testing.T) {
	f := newOrderFixture(t)

	id, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)
	require.False(t, id.IsZero())

	order, err := f.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, f.plantID.Hex(), order.PlantID)
	assert.Positive(t, order.TimeStamp)
}

func TestPlaceKeepsExplicitStatus(t *testing.T) {
	f := newOrderFixture(t)

	req := f.request()
	req.Status = models.StatusProcessing
	id, err := f.svc.Place(context.Background(), req)
	require.NoError(t, err)

	order, err := f.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)
}

func TestPlaceRejectsUnknownPlant(t *testing.T) {
	f := newOrderFixture(t)

	req := f.request()
	req.PlantID = primitive.NewObjectID().Hex()
	_, err := f.svc.Place(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrPlantNotFound)

	req.PlantID = "definitely-not-hex"
	_, err = f.svc.Place(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrPlantNotFound)
}

func TestPlaceIsNotIdempotent(t *testing.T) {
	f := newOrderFixture(t)

	first, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)
	second, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHistoryEnrichesWithPlantFields(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)

	// Another customer's order must not leak in.
	other := f.request()
	other.Customer.Email = "dave@example.com"
	_, err = f.svc.Place(context.Background(), other)
	require.NoError(t, err)

	rows, err := f.svc.History(context.Background(), "carol@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, f.plantID, row.PlantID)
	assert.Equal(t, "Fiddle Leaf Fig", row.Name)
	assert.Equal(t, "Indoor", row.Category)
	assert.Equal(t, "https://img.example.com/fig.jpg", row.Image)
	assert.Equal(t, "carol@example.com", row.Customer.Email)
}

func TestHistoryExcludesDanglingPlantReference(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)

	// An order whose plant has since vanished drops out of the inner join.
	_, err = f.orders.Insert(context.Background(), &models.Order{
		PlantID:  primitive.NewObjectID().Hex(),
		Customer: models.CustomerInfo{Email: "carol@example.com"},
		Price:    10,
		Quantity: 1,
		Status:   models.StatusPending,
	})
	require.NoError(t, err)

	rows, err := f.svc.History(context.Background(), "carol@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Fiddle Leaf Fig", rows[0].Name)
}

func TestHistoryFailsOnMalformedPlantReference(t *testing.T) {
	f := newOrderFixture(t)

	// Placement validates plantId, so a malformed reference can only come
	// from legacy data written straight to the store. The coercion stage
	// rejects it for the whole aggregation.
	_, err := f.orders.Insert(context.Background(), &models.Order{
		PlantID:  "not-an-object-id",
		Customer: models.CustomerInfo{Email: "carol@example.com"},
		Quantity: 1,
		Status:   models.StatusPending,
	})
	require.NoError(t, err)

	_, err = f.svc.History(context.Background(), "carol@example.com")
	assert.Error(t, err)
}

func TestHistoryEmptyForUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t)

	rows, err := f.svc.History(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCancelPendingOrder(t *testing.T) {
	f := newOrderFixture(t)

	id, err := f.svc.Place(context.Background(), f.request())
	require.NoError(t, err)

	deleted, err := f.svc.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = f.orders.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCancelShippedOrderConflicts(t *testing.T) {
	f := newOrderFixture(t)

	req := f.request()
	req.Status = models.StatusShipped
	id, err := f.svc.Place(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), id)
	assert.ErrorIs(t, err, services.ErrOrderShipped)

	// The order must survive the rejected cancellation.
	order, err := f.orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, order.Status)
}

func TestCancelMissingOrder(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Cancel(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}
