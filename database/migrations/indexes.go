package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register("users_email_unique", usersEmailUnique)
	Register("orders_customer_email", ordersCustomerEmail)
	Register("plants_category", plantsCategory)
}

// usersEmailUnique enforces one account per email address. The upsert
// endpoint relies on this to stay race-free under concurrent signups.
func usersEmailUnique(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ordersCustomerEmail backs the purchase-history lookup.
func ordersCustomerEmail(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customer.email", Value: 1}},
	})
	return err
}

// plantsCategory supports category-filtered catalog queries.
func plantsCategory(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("plants").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	return err
}
