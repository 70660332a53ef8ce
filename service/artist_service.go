package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/logger"
	"github.com/anashalam/music-app-backend/repository"
)

type ArtistService interface {
	Register(ctx context.Context, userID string, req dto.ArtistRegisterRequest) (*domain.Artist, error)
	PublicProfile(ctx context.Context, artistID string) (*dto.ArtistProfileResponse, error)
}

type artistService struct {
	artists repository.ArtistRepository
	media   repository.MediaRepository
	social  repository.SocialRepository
}

func NewArtistService(artists repository.ArtistRepository, media repository.MediaRepository, social repository.SocialRepository) ArtistService {
	return &artistService{artists: artists, media: media, social: social}
}

// Register promotes a user to artist exactly once. A second attempt by the
// same user is a conflict, never a silent overwrite.
func (s *artistService) Register(ctx context.Context, userID string, req dto.ArtistRegisterRequest) (*domain.Artist, error) {
	req.StageName = strings.TrimSpace(req.StageName)
	if req.StageName == "" {
		return nil, domain.NewValidationError("stage_name", "is required")
	}

	artist := &domain.Artist{
		ID:        uuid.New().String(),
		UserID:    userID,
		StageName: req.StageName,
		Bio:       req.Bio,
	}
	if err := s.artists.CreateWithRolePromotion(ctx, artist); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "artist registered",
		logger.Fields("artist_id", artist.ID, "user_id", userID))
	return artist, nil
}

func (s *artistService) PublicProfile(ctx context.Context, artistID string) (*dto.ArtistProfileResponse, error) {
	profile, err := s.artists.ProfileByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	followers, err := s.social.FollowerCount(ctx, artistID)
	if err != nil {
		return nil, err
	}

	songs, err := s.media.SongsByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	return &dto.ArtistProfileResponse{
		ID:              profile.ID,
		StageName:       profile.StageName,
		Bio:             profile.Bio,
		IsVerified:      profile.IsVerified,
		ProfileImageURL: profile.ProfilePicURL,
		Followers:       followers,
		Songs:           songs,
	}, nil
}
