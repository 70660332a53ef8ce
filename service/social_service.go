package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/repository"
)

type SocialService interface {
	FollowArtist(ctx context.Context, userID, artistID string) error
	UnfollowArtist(ctx context.Context, userID, artistID string) error
	Following(ctx context.Context, userID string) ([]repository.FollowedArtist, error)
	LikeSong(ctx context.Context, userID, songID string) error
	UnlikeSong(ctx context.Context, userID, songID string) error
	LikedSongs(ctx context.Context, userID string) ([]domain.Song, error)
}

type socialService struct {
	social  repository.SocialRepository
	artists repository.ArtistRepository
	media   repository.MediaRepository
}

func NewSocialService(social repository.SocialRepository, artists repository.ArtistRepository, media repository.MediaRepository) SocialService {
	return &socialService{social: social, artists: artists, media: media}
}

func (s *socialService) FollowArtist(ctx context.Context, userID, artistID string) error {
	if _, err := s.artists.FindByID(ctx, artistID); err != nil {
		return err
	}
	return s.social.Follow(ctx, &domain.Follower{
		ID:       uuid.New().String(),
		UserID:   userID,
		ArtistID: artistID,
	})
}

// UnfollowArtist succeeds whether or not the relation existed.
func (s *socialService) UnfollowArtist(ctx context.Context, userID, artistID string) error {
	return s.social.Unfollow(ctx, userID, artistID)
}

func (s *socialService) Following(ctx context.Context, userID string) ([]repository.FollowedArtist, error) {
	return s.social.Following(ctx, userID)
}

func (s *socialService) LikeSong(ctx context.Context, userID, songID string) error {
	exists, err := s.media.Exists(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.social.Like(ctx, &domain.Like{
		ID:     uuid.New().String(),
		UserID: userID,
		SongID: songID,
	})
}

// UnlikeSong succeeds whether or not the relation existed.
func (s *socialService) UnlikeSong(ctx context.Context, userID, songID string) error {
	return s.social.Unlike(ctx, userID, songID)
}

func (s *socialService) LikedSongs(ctx context.Context, userID string) ([]domain.Song, error) {
	return s.social.LikedSongs(ctx, userID)
}
