package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const usernameTakenMessage = "A user with that username already exists."

type AuthService interface {
	Register(ctx context.Context, req request.RegisterRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token; unknown tokens yield an anonymous caller
	Authenticate(ctx context.Context, token string) (utils.Caller, error)
}

type authService struct {
	repo   *repository.Repository // user and session repositories
	config utils.SessionConfig
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config utils.SessionConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req request.RegisterRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	user, err := createUser(ctx, s.repo, req, false)
	if err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Account created but session could not be issued",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username))
		return nil, fmt.Errorf("create session after register: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrInactiveAccount
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		// Nothing to revoke
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Session revoked")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (utils.Caller, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return utils.Caller{}, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return utils.Caller{}, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return utils.Caller{}, nil
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return utils.Caller{}, fmt.Errorf("find session user: %w", err)
	}
	// Deactivated accounts lose their sessions
	if user == nil || !user.IsActive {
		return utils.Caller{}, nil
	}

	return utils.Caller{
		UserID:   user.ID,
		Username: user.Username,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
		Token:    token,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client request.ClientInfo) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.config.TTL()),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// createUser validates a registration form and stores the account
func createUser(ctx context.Context, repo *repository.Repository, req request.RegisterRequest, isStaff bool) (*entity.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	existing, err := repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, newValidationError(map[string]string{"username": usernameTakenMessage})
	}

	hashedPassword, err := utils.HashPassword(req.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsStaff:      isStaff,
	}

	if err := repo.User.Create(ctx, user); err != nil {
		// Lost a race for the same username
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newValidationError(map[string]string{"username": usernameTakenMessage})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
