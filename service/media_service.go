package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
	"github.com/anashalam/music-app-backend/storage"
)

const (
	defaultGenre  = "Unknown"
	trendingLimit = 10
)

// UploadInput carries the multipart parts of a song upload. Thumbnail is
// optional.
type UploadInput struct {
	Title     string
	Genre     string
	File      *multipart.FileHeader
	Thumbnail *multipart.FileHeader
}

type MediaService interface {
	Upload(ctx context.Context, userID string, in UploadInput) (*domain.Song, error)
	Delete(ctx context.Context, userID, mediaID string) error
	Play(ctx context.Context, mediaID string) error
	Details(ctx context.Context, mediaID string) (*dto.SongDetailsResponse, error)
	Search(ctx context.Context, query string) ([]domain.Song, error)
	ListAll(ctx context.Context) ([]domain.Song, error)
	Trending(ctx context.Context) ([]domain.Song, error)
}

type mediaService struct {
	media   repository.MediaRepository
	artists repository.ArtistRepository
	store   storage.Store
}

func NewMediaService(media repository.MediaRepository, artists repository.ArtistRepository, store storage.Store) MediaService {
	return &mediaService{media: media, artists: artists, store: store}
}

// Upload stores the audio asset (and optional thumbnail) first and inserts
// the catalog row last. If any later step fails, everything already stored is
// removed so no orphaned files survive a failed upload.
func (s *mediaService) Upload(ctx context.Context, userID string, in UploadInput) (*domain.Song, error) {
	artist, err := s.artists.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrArtistRequired
	}
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	if in.File == nil {
		return nil, domain.NewValidationError("file", "is required")
	}
	if in.Genre == "" {
		in.Genre = defaultGenre
	}

	fileURL, err := s.store.Save(in.File, storage.KindAudio)
	if err != nil {
		return nil, err
	}

	thumbURL := ""
	if in.Thumbnail != nil {
		thumbURL, err = s.store.Save(in.Thumbnail, storage.KindImage)
		if err != nil {
			s.removeAssets(fileURL, "")
			return nil, err
		}
	}

	media := &domain.Media{
		ID:           uuid.New().String(),
		ArtistID:     artist.ID,
		Title:        in.Title,
		Genre:        in.Genre,
		FileURL:      fileURL,
		ThumbnailURL: thumbURL,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.media.Create(ctx, media); err != nil {
		s.removeAssets(fileURL, thumbURL)
		return nil, err
	}

	logger.Info(logger.EventMediaUpload, "song uploaded",
		logger.Fields("media_id", media.ID, "artist_id", artist.ID))

	return &domain.Song{
		ID:           media.ID,
		Title:        media.Title,
		FileURL:      media.FileURL,
		ThumbnailURL: media.ThumbnailURL,
		Genre:        media.Genre,
		ArtistID:     media.ArtistID,
		ArtistName:   artist.StageName,
	}, nil
}

// resolveOwner walks media -> artist -> user and compares against the caller.
// A missing song is ErrNotFound; a song owned by someone else is ErrNotOwner,
// since the catalog is public and hiding existence buys nothing.
func (s *mediaService) resolveOwner(ctx context.Context, userID, mediaID string) (*repository.MediaOwnership, error) {
	ownership, err := s.media.FindOwnership(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if ownership.OwnerUserID != userID {
		logger.Security(logger.EventOwnershipDenied, "media mutation by non-owner",
			logger.Fields("media_id", mediaID, "user_id", userID))
		return nil, domain.ErrNotOwner
	}
	return ownership, nil
}

// Delete removes the catalog row first, then the stored assets. Asset removal
// failures are logged, not surfaced: the row is gone, so the delete succeeded.
func (s *mediaService) Delete(ctx context.Context, userID, mediaID string) error {
	ownership, err := s.resolveOwner(ctx, userID, mediaID)
	if err != nil {
		return err
	}

	if err := s.media.Delete(ctx, mediaID); err != nil {
		return err
	}

	s.removeAssets(ownership.FileURL, ownership.ThumbnailURL)
	logger.Info(logger.EventMediaDelete, "song deleted",
		logger.Fields("media_id", mediaID, "user_id", userID))
	return nil
}

func (s *mediaService) removeAssets(fileURL, thumbURL string) {
	for _, url := range []string{fileURL, thumbURL} {
		if url == "" {
			continue
		}
		if err := s.store.Remove(url); err != nil {
			logger.Error(logger.EventOrphanCleanup, "failed to remove stored asset",
				logger.Fields("url", url, "error", err.Error()))
		}
	}
}

func (s *mediaService) Play(ctx context.Context, mediaID string) error {
	return s.media.IncrementViews(ctx, mediaID)
}

func (s *mediaService) Details(ctx context.Context, mediaID string) (*dto.SongDetailsResponse, error) {
	d, err := s.media.Details(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SongDetailsResponse{
		ID:           d.ID,
		Title:        d.Title,
		FileURL:      d.FileURL,
		ThumbnailURL: d.ThumbnailURL,
		Views:        d.Views,
	}
	if d.Ad != nil {
		resp.Ad = &dto.AdResponse{
			ID:         d.Ad.ID,
			Title:      d.Ad.Title,
			AdImageURL: d.Ad.AdImageURL,
			TargetURL:  d.Ad.TargetURL,
			AdType:     d.Ad.AdType,
		}
	}
	return resp, nil
}

func (s *mediaService) Search(ctx context.Context, query string) ([]domain.Song, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("q", "is required")
	}
	return s.media.Search(ctx, query)
}

func (s *mediaService) ListAll(ctx context.Context) ([]domain.Song, error) {
	return s.media.ListAll(ctx)
}

func (s *mediaService) Trending(ctx context.Context) ([]domain.Song, error) {
	return s.media.Trending(ctx, trendingLimit)
}
