package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/cache"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// catalogCacheKey holds the cached full listing.
const catalogCacheKey = "plantnet:plants:all"

// PlantService serves the catalog and the stock-quantity adjustment.
type PlantService struct {
	plants repositories.PlantRepository
}

func NewPlantService(plants repositories.PlantRepository) *PlantService {
	return &PlantService{plants: plants}
}

// Catalog returns every plant, served from the redis cache when fresh.
func (s *PlantService) Catalog(ctx context.Context) ([]models.Plant, error) {
	var cached []models.Plant
	if cache.Get(catalogCacheKey, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	plants, err := s.plants.All(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(catalogCacheKey, plants, config.CatalogCacheTTL())
	return plants, nil
}

// Find returns one plant by its hex id. Malformed ids and absent documents
// both surface as ErrPlantNotFound.
func (s *PlantService) Find(ctx context.Context, idHex string) (*models.Plant, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrPlantNotFound
	}

	plant, err := s.plants.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPlantNotFound
	}
	return plant, err
}

// Create inserts a catalog item on behalf of the authenticated seller.
func (s *PlantService) Create(ctx context.Context, req models.PlantRequest, sellerEmail string) (primitive.ObjectID, error) {
	plant := &models.Plant{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if sellerEmail != "" {
		plant.Seller = &models.SellerInfo{Email: sellerEmail}
	}

	id, err := s.plants.Insert(ctx, plant)
	if err != nil {
		return primitive.NilObjectID, err
	}

	_ = cache.Del(catalogCacheKey)
	return id, nil
}

// AdjustQuantity applies the relative delta to a plant's stock. The delta
// direction comes from the request's status flag: "increase" adds, anything
// else subtracts (floored at zero). An id that matches no plant is
// ErrPlantNotFound rather than a silent no-op.
func (s *PlantService) AdjustQuantity(ctx context.Context, idHex string, req models.StockAdjustmentRequest) (matched, modified int64, err error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return 0, 0, ErrPlantNotFound
	}

	matched, modified, err = s.plants.AdjustQuantity(ctx, id, req.QuantityUpdate, req.Increase())
	if err != nil {
		return 0, 0, fmt.Errorf("adjust quantity: %w", err)
	}
	if matched == 0 {
		return 0, 0, ErrPlantNotFound
	}

	direction := "decrease"
	if req.Increase() {
		direction = "increase"
	}
	metrics.StockAdjustments.WithLabelValues(direction).Inc()

	_ = cache.Del(catalogCacheKey)
	return matched, modified, nil
}
