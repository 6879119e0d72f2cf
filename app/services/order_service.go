package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// OrderService runs the order lifecycle: placement, history retrieval, and
// shipment-gated cancellation.
type OrderService struct {
	orders repositories.OrderRepository
	plants repositories.PlantRepository
}

func NewOrderService(orders repositories.OrderRepository, plants repositories.PlantRepository) *OrderService {
	return &OrderService{orders: orders, plants: plants}
}

// Place validates the plant reference and inserts one order with a
// server-assigned id and timestamp. Stock is NOT decremented here; the
// client issues the explicit quantity adjustment call separately. Repeated
// calls create repeated orders.
func (s *OrderService) Place(ctx context.Context, req models.OrderRequest) (primitive.ObjectID, error) {
	plantID, err := primitive.ObjectIDFromHex(req.PlantID)
	if err != nil {
		return primitive.NilObjectID, ErrPlantNotFound
	}

	// Orders must reference a plant that exists at placement time.
	if _, err := s.plants.FindByID(ctx, plantID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return primitive.NilObjectID, ErrPlantNotFound
		}
		return primitive.NilObjectID, fmt.Errorf("order place: verify plant: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	order := &models.Order{
		PlantID:   req.PlantID,
		Customer:  req.Customer,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Address:   req.Address,
		Status:    status,
		TimeStamp: time.Now().UnixMilli(),
	}

	id, err := s.orders.Insert(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}

	metrics.OrdersPlaced.Inc()
	return id, nil
}

// History returns the customer's orders enriched with plant details.
func (s *OrderService) History(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	return s.orders.HistoryByEmail(ctx, email)
}

// Cancel deletes an order unless it has already shipped. A missing order is
// ErrOrderNotFound; a shipped one is ErrOrderShipped and stays in the store.
func (s *OrderService) Cancel(ctx context.Context, id primitive.ObjectID) (int64, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.OrdersCancelled.WithLabelValues("not_found").Inc()
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("order cancel: lookup: %w", err)
	}

	if order.Status == models.StatusShipped {
		metrics.OrdersCancelled.WithLabelValues("conflict").Inc()
		return 0, ErrOrderShipped
	}

	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	metrics.OrdersCancelled.WithLabelValues("deleted").Inc()
	return deleted, nil
}
