package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
	"github.com/anashalam/music-app-backend/storage"
)

const (
	defaultAdTitle = "Untitled Ad"
	defaultAdType  = "BANNER"
)

// AdInput carries the multipart parts of an ad creation request.
type AdInput struct {
	Title     string
	TargetURL string
	AdType    string
	Image     *multipart.FileHeader
}

type AdminService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	VerifyArtist(ctx context.Context, adminID, artistID string) error
	CreateAd(ctx context.Context, adminID string, in AdInput) (*domain.Ad, error)
	AssignAd(ctx context.Context, adminID, songID, adID string) error
}

type adminService struct {
	users   repository.UserRepository
	artists repository.ArtistRepository
	media   repository.MediaRepository
	ads     repository.AdRepository
	store   storage.Store
}

func NewAdminService(
	users repository.UserRepository,
	artists repository.ArtistRepository,
	media repository.MediaRepository,
	ads repository.AdRepository,
	store storage.Store,
) AdminService {
	return &adminService{users: users, artists: artists, media: media, ads: ads, store: store}
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	artists, err := s.artists.Count(ctx)
	if err != nil {
		return nil, err
	}
	songs, err := s.media.Count(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.media.TotalViews(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalUsers:   users,
		TotalArtists: artists,
		TotalSongs:   songs,
		TotalViews:   views,
	}, nil
}

func (s *adminService) VerifyArtist(ctx context.Context, adminID, artistID string) error {
	if err := s.artists.SetVerified(ctx, artistID); err != nil {
		return err
	}
	logger.Info(logger.EventAdminActivity, "artist verified",
		logger.Fields("admin_id", adminID, "artist_id", artistID))
	return nil
}

// CreateAd stores the creative first and inserts the row last, removing the
// stored file again if the insert fails.
func (s *adminService) CreateAd(ctx context.Context, adminID string, in AdInput) (*domain.Ad, error) {
	if in.Image == nil {
		return nil, domain.NewValidationError("image", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		in.Title = defaultAdTitle
	}
	if in.AdType == "" {
		in.AdType = defaultAdType
	}

	imageURL, err := s.store.Save(in.Image, storage.KindImage)
	if err != nil {
		return nil, err
	}

	ad := &domain.Ad{
		ID:         uuid.New().String(),
		Title:      in.Title,
		AdImageURL: imageURL,
		TargetURL:  in.TargetURL,
		AdType:     in.AdType,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		if rmErr := s.store.Remove(imageURL); rmErr != nil {
			logger.Error(logger.EventOrphanCleanup, "failed to remove orphaned ad creative",
				logger.Fields("url", imageURL, "error", rmErr.Error()))
		}
		return nil, err
	}

	logger.Info(logger.EventAdminActivity, "ad created",
		logger.Fields("admin_id", adminID, "ad_id", ad.ID))
	return ad, nil
}

func (s *adminService) AssignAd(ctx context.Context, adminID, songID, adID string) error {
	exists, err := s.ads.Exists(ctx, adID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := s.media.AssignAd(ctx, songID, adID); err != nil {
		return err
	}
	logger.Info(logger.EventAdminActivity, "ad assigned to song",
		logger.Fields("admin_id", adminID, "song_id", songID, "ad_id", adID))
	return nil
}
