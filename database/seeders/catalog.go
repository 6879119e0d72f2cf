package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/app/models"
)

func init() {
	Register("users", SeedUsers)
	Register("plants", SeedPlants)
}

// SeedUsers inserts a demo seller account. Skips if the collection already
// has documents so the seeder stays re-runnable.
func SeedUsers(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("users")
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = coll.InsertOne(ctx, models.User{
		Email:     "seller@plantnet.dev",
		Name:      "Demo Seller",
		Role:      models.RoleSeller,
		TimeStamp: time.Now().UnixMilli(),
	})
	return err
}

// SeedPlants inserts a starter catalog. Skips if plants already exist.
func SeedPlants(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("plants")
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seller := &models.SellerInfo{Email: "seller@plantnet.dev", Name: "Demo Seller"}
	plants := []interface{}{
		models.Plant{
			Name:        "Monstera Deliciosa",
			Category:    "Indoor",
			Description: "Split-leaf philodendron, tolerant of low light.",
			Price:       24.99,
			Quantity:    12,
			Seller:      seller,
		},
		models.Plant{
			Name:        "Snake Plant",
			Category:    "Succulent",
			Description: "Near-indestructible, waters itself if you forget.",
			Price:       14.50,
			Quantity:    30,
			Seller:      seller,
		},
		models.Plant{
			Name:        "Fiddle Leaf Fig",
			Category:    "Indoor",
			Description: "Dramatic broad leaves, dramatic personality.",
			Price:       39.00,
			Quantity:    5,
			Seller:      seller,
		},
		models.Plant{
			Name:        "Lavender",
			Category:    "Outdoor",
			Description: "Fragrant, pollinator-friendly perennial.",
			Price:       9.75,
			Quantity:    48,
			Seller:      seller,
		},
	}

	_, err = coll.InsertMany(ctx, plants)
	return err
}
