package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
)

// UserService handles the idempotent user upsert.
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Upsert creates the user once per email. When the email already exists the
// stored record is returned unchanged; created reports whether an insert
// happened. New users get the customer role and a server-side timestamp.
func (s *UserService) Upsert(ctx context.Context, email string, req models.UserRequest) (user *models.User, created bool, err error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("user upsert: lookup: %w", err)
	}

	fresh := &models.User{
		Email:     email,
		Name:      req.Name,
		Image:     req.Image,
		Role:      models.RoleCustomer,
		TimeStamp: time.Now().UnixMilli(),
	}

	id, err := s.users.Insert(ctx, fresh)
	if err != nil {
		return nil, false, err
	}
	fresh.ID = id

	return fresh, true, nil
}
