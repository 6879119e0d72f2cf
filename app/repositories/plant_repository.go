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

// MongoPlantRepository is the plants collection implementation.
type MongoPlantRepository struct {
	col *mongo.Collection
}

func NewMongoPlantRepository(db *mongo.Database) *MongoPlantRepository {
	return &MongoPlantRepository{col: db.Collection(PlantsCollection)}
}

// All returns the full catalog.
func (r *MongoPlantRepository) All(ctx context.Context) ([]models.Plant, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("plants: find all: %w", err)
	}

	plants := []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("plants: decode: %w", err)
	}
	return plants, nil
}

// FindByID looks up one plant.
func (r *MongoPlantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Plant, error) {
	var plant models.Plant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("plants: find by id: %w", err)
	}
	return &plant, nil
}

// Insert persists a new catalog item and returns its assigned id.
func (r *MongoPlantRepository) Insert(ctx context.Context, plant *models.Plant) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, plant)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("plants: insert: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// AdjustQuantity applies a relative delta as one atomic document update.
// Increments use a plain $inc. Decrements run as a pipeline update so the
// result can be floored at zero in the same write; still a single-document
// atomic operation, so concurrent adjustments never race a read-modify-write.
func (r *MongoPlantRepository) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int, increase bool) (int64, int64, error) {
	filter := bson.M{"_id": id}

	var update interface{}
	if increase {
		update = bson.M{"$inc": bson.M{"quantity": delta}}
	} else {
		update = mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"quantity": bson.M{"$max": bson.A{
					bson.M{"$add": bson.A{"$quantity", -delta}},
					0,
				}},
			}}},
		}
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, 0, fmt.Errorf("plants: adjust quantity: %w", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}
