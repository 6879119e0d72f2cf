package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/app/models"
)

// MongoOrderRepository is the orders collection implementation.
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection(OrdersCollection)}
}

// Insert persists a new order and returns its assigned id.
func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("orders: insert: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindByID looks up one order.
func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: find by id: %w", err)
	}
	return &order, nil
}

// Delete removes one order and returns the deleted count.
func (r *MongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("orders: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// HistoryByEmail runs the order-history aggregation: filter the customer's
// orders, coerce the string plantId into an ObjectID so it can join against
// plants._id, unwind each match into one flattened row, lift the plant's
// name/image/category onto the row, and drop the nested plant document.
// The unwind makes this an inner join: orders with a dangling plant
// reference do not appear in the result.
func (r *MongoOrderRepository) HistoryByEmail(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"customer.email": email}}},
		{{Key: "$addFields", Value: bson.M{
			"plantId": bson.M{"$toObjectId": "$plantId"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         PlantsCollection,
			"localField":   "plantId",
			"foreignField": "_id",
			"as":           "plant",
		}}},
		{{Key: "$unwind", Value: "$plant"}},
		{{Key: "$addFields", Value: bson.M{
			"name":     "$plant.name",
			"image":    "$plant.image",
			"category": "$plant.category",
		}}},
		{{Key: "$project", Value: bson.M{"plant": 0}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("orders: history aggregate: %w", err)
	}

	rows := []models.EnrichedOrder{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("orders: history decode: %w", err)
	}
	return rows, nil
}
