package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/dto"
	"github.com/anashalam/music-app-backend/repository"
)

const defaultPlaylistName = "My Playlist"

type PlaylistService interface {
	Create(ctx context.Context, userID, name string) (*domain.Playlist, error)
	Details(ctx context.Context, userID, playlistID string) (*dto.PlaylistResponse, error)
	Delete(ctx context.Context, userID, playlistID string) error
	AddSong(ctx context.Context, userID, playlistID, songID string) error
	RemoveSong(ctx context.Context, userID, playlistID, songID string) error
}

type playlistService struct {
	playlists repository.PlaylistRepository
	media     repository.MediaRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, media repository.MediaRepository) PlaylistService {
	return &playlistService{playlists: playlists, media: media}
}

func (s *playlistService) Create(ctx context.Context, userID, name string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlaylistName
	}
	p := &domain.Playlist{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Details returns the playlist with its songs. Playlists are private, so one
// owned by another user looks exactly like one that does not exist.
func (s *playlistService) Details(ctx context.Context, userID, playlistID string) (*dto.PlaylistResponse, error) {
	p, err := s.playlists.FindOwned(ctx, playlistID, userID)
	if err != nil {
		return nil, err
	}
	songs, err := s.playlists.Songs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &dto.PlaylistResponse{ID: p.ID, Name: p.Name, Songs: songs}, nil
}

func (s *playlistService) Delete(ctx context.Context, userID, playlistID string) error {
	return s.playlists.Delete(ctx, playlistID, userID)
}

// AddSong checks ownership first, then the song's existence, then duplication.
// The first failing check decides the error.
func (s *playlistService) AddSong(ctx context.Context, userID, playlistID, songID string) error {
	if _, err := s.playlists.FindOwned(ctx, playlistID, userID); err != nil {
		return err
	}

	exists, err := s.media.Exists(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	return s.playlists.AddSong(ctx, playlistID, songID)
}

func (s *playlistService) RemoveSong(ctx context.Context, userID, playlistID, songID string) error {
	if _, err := s.playlists.FindOwned(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.playlists.RemoveSong(ctx, playlistID, songID)
}
