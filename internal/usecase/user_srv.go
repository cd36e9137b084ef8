package usecase

import (
	"context"
	"errors"
	"fmt"

	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"

	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// UserService manages accounts outside the public registration flow
type UserService interface {
	CreateStaff(ctx context.Context, req request.RegisterRequest) (*response.UserResponse, error)
	SetStaff(ctx context.Context, username string, isStaff bool) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) CreateStaff(ctx context.Context, req request.RegisterRequest) (*response.UserResponse, error) {
	user, err := createUser(ctx, s.repo, req, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("Staff account created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) SetStaff(ctx context.Context, username string, isStaff bool) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repo.User.SetStaff(ctx, user.ID, isStaff); err != nil {
		return nil, fmt.Errorf("set staff: %w", err)
	}
	user.IsStaff = isStaff

	resp := response.UserToResponse(user)
	return &resp, nil
}
