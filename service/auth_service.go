package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/auth"
	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if req.Email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	if req.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrConflict
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "user registered", logger.Fields("user_id", user.ID))
	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.NewValidationError("", "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Security(logger.EventLoginFailure, "unknown username", logger.Fields("username", req.Username))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		logger.Security(logger.EventLoginFailure, "wrong password", logger.Fields("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	logger.Info(logger.EventLoginSuccess, "user logged in", logger.Fields("user_id", user.ID))
	return s.respond(user)
}

func (s *authService) respond(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserProfile(user)}, nil
}
