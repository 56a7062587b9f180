package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/internal/repository"
)

type UserService struct {
	log   *zap.Logger
	users repository.Users
}

func NewUserService(users repository.Users, log *zap.Logger) *UserService {
	return &UserService{
		log:   log,
		users: users,
	}
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return s.users.Create(ctx, req.Name, req.Email)
}

// Update is partial: only the fields present are replaced. Email uniqueness
// is enforced by the store's constraint.
func (s *UserService) Update(ctx context.Context, userID int64, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
