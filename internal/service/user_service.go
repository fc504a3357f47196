package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/fishedex/internal/domain"
)

// userRepository is the subset of store.UserStore that UserService requires.
type userRepository interface {
	Create(ctx context.Context, username, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type UserService struct {
	users  userRepository
	logger *slog.Logger
}

func NewUserService(users userRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, username, email string) (*domain.User, error) {
	user, err := s.users.Create(ctx, username, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("User")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
