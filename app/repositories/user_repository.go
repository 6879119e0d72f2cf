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

// MongoUserRepository is the users collection implementation.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(UsersCollection)}
}

// FindByEmail looks up a user by their email address.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// Insert persists a new user record and returns its assigned id.
func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("users: insert: %w", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}
