package service

import (
	"context"
	"mime/multipart"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
	"github.com/anashalam/music-app-backend/storage"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (*dto.UserProfile, error)
	UpdateBio(ctx context.Context, userID, bio string) error
	UpdateProfilePic(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
}

type userService struct {
	users repository.UserRepository
	store storage.Store
}

func NewUserService(users repository.UserRepository, store storage.Store) UserService {
	return &userService{users: users, store: store}
}

func (s *userService) Profile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := dto.NewUserProfile(user)
	return &profile, nil
}

func (s *userService) UpdateBio(ctx context.Context, userID, bio string) error {
	return s.users.UpdateBio(ctx, userID, bio)
}

const maxProfilePicBytes = 5 << 20

// UpdateProfilePic stores the image first and only then points the account at
// it. If the account update fails the stored file is removed again.
func (s *userService) UpdateProfilePic(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", domain.NewValidationError("profile_pic", "is required")
	}
	if file.Size > maxProfilePicBytes {
		return "", domain.NewValidationError("profile_pic", "must be 5MB or smaller")
	}

	url, err := s.store.SaveProfilePic(file)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateProfilePic(ctx, userID, url); err != nil {
		if rmErr := s.store.Remove(url); rmErr != nil {
			logger.Error(logger.EventOrphanCleanup, "failed to remove orphaned profile picture",
				logger.Fields("url", url, "error", rmErr.Error()))
		}
		return "", err
	}
	return url, nil
}
