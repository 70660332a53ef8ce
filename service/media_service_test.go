package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/anashalam/music-app-backend/domain"
	"github.com/anashalam/music-app-backend/repository"
	"github.com/anashalam/music-app-backend/storage"
)

type mockMediaRepo struct {
	repository.MediaRepository

	createErr error
	created   []*domain.Media

	ownership    *repository.MediaOwnership
	ownershipErr error

	deleted   []string
	deleteErr error
}

func (m *mockMediaRepo) Create(ctx context.Context, media *domain.Media) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, media)
	return nil
}

func (m *mockMediaRepo) FindOwnership(ctx context.Context, id string) (*repository.MediaOwnership, error) {
	if m.ownershipErr != nil {
		return nil, m.ownershipErr
	}
	return m.ownership, nil
}

func (m *mockMediaRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockArtistRepo struct {
	repository.ArtistRepository

	artist *domain.Artist
}

func (m *mockArtistRepo) FindByUserID(ctx context.Context, userID string) (*domain.Artist, error) {
	if m.artist == nil || m.artist.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return m.artist, nil
}

type mockStore struct {
	saved   []string
	removed []string
	saveErr map[storage.Kind]error
}

func (m *mockStore) Save(file *multipart.FileHeader, kind storage.Kind) (string, error) {
	if err := m.saveErr[kind]; err != nil {
		return "", err
	}
	url := fmt.Sprintf("/uploads/stored-%d", len(m.saved))
	m.saved = append(m.saved, url)
	return url, nil
}

func (m *mockStore) SaveProfilePic(file *multipart.FileHeader) (string, error) {
	return m.Save(file, storage.KindImage)
}

func (m *mockStore) Remove(url string) error {
	m.removed = append(m.removed, url)
	return nil
}

func newUploadFixture() (*mockMediaRepo, *mockArtistRepo, *mockStore, MediaService) {
	media := &mockMediaRepo{}
	artists := &mockArtistRepo{artist: &domain.Artist{ID: "a1", UserID: "u1", StageName: "DJ Test"}}
	store := &mockStore{saveErr: map[storage.Kind]error{}}
	return media, artists, store, NewMediaService(media, artists, store)
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func TestUploadRequiresArtist(t *testing.T) {
	_, _, _, svc := newUploadFixture()

	_, err := svc.Upload(context.Background(), "not-an-artist", UploadInput{
		Title: "Track", File: fileHeader("t.mp3"),
	})
	if !errors.Is(err, domain.ErrArtistRequired) {
		t.Errorf("expected ErrArtistRequired, got %v", err)
	}
}

func TestUploadRequiresTitleAndFile(t *testing.T) {
	_, _, store, svc := newUploadFixture()

	if _, err := svc.Upload(context.Background(), "u1", UploadInput{File: fileHeader("t.mp3")}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for missing title, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "u1", UploadInput{Title: "Track"}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for missing file, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("nothing should be stored before validation passes, got %v", store.saved)
	}
}

func TestUploadDefaultsGenre(t *testing.T) {
	media, _, _, svc := newUploadFixture()

	song, err := svc.Upload(context.Background(), "u1", UploadInput{
		Title: "Track", File: fileHeader("t.mp3"),
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if song.Genre != "Unknown" {
		t.Errorf("expected genre Unknown, got %q", song.Genre)
	}
	if len(media.created) != 1 {
		t.Fatalf("expected 1 created row, got %d", len(media.created))
	}
	if media.created[0].ArtistID != "a1" {
		t.Errorf("expected artist a1, got %s", media.created[0].ArtistID)
	}
}

func TestUploadCleansUpOnInsertFailure(t *testing.T) {
	media, _, store, svc := newUploadFixture()
	media.createErr = errors.New("disk full")

	_, err := svc.Upload(context.Background(), "u1", UploadInput{
		Title:     "Track",
		File:      fileHeader("t.mp3"),
		Thumbnail: fileHeader("t.png"),
	})
	if err == nil {
		t.Fatal("expected error from failed insert")
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected 2 stored assets, got %d", len(store.saved))
	}
	if len(store.removed) != 2 {
		t.Fatalf("expected both assets removed after failed insert, got %v", store.removed)
	}
}

func TestUploadCleansUpAudioWhenThumbnailFails(t *testing.T) {
	_, _, store, svc := newUploadFixture()
	store.saveErr[storage.KindImage] = errors.New("not an image")

	_, err := svc.Upload(context.Background(), "u1", UploadInput{
		Title:     "Track",
		File:      fileHeader("t.mp3"),
		Thumbnail: fileHeader("t.png"),
	})
	if err == nil {
		t.Fatal("expected error from failed thumbnail save")
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected stored audio removed, got %v", store.removed)
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	media, _, store, svc := newUploadFixture()
	media.ownership = &repository.MediaOwnership{OwnerUserID: "someone-else", FileURL: "/uploads/x.mp3"}

	err := svc.Delete(context.Background(), "u1", "m1")
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if len(media.deleted) != 0 {
		t.Errorf("delete must not reach the store for a non-owner")
	}
	if len(store.removed) != 0 {
		t.Errorf("assets must survive a denied delete")
	}
}

func TestDeleteMissingSong(t *testing.T) {
	media, _, _, svc := newUploadFixture()
	media.ownershipErr = domain.ErrNotFound

	if err := svc.Delete(context.Background(), "u1", "m1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesRowThenAssets(t *testing.T) {
	media, _, store, svc := newUploadFixture()
	media.ownership = &repository.MediaOwnership{
		OwnerUserID:  "u1",
		FileURL:      "/uploads/x.mp3",
		ThumbnailURL: "/uploads/x.png",
	}

	if err := svc.Delete(context.Background(), "u1", "m1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(media.deleted) != 1 || media.deleted[0] != "m1" {
		t.Errorf("expected row m1 deleted, got %v", media.deleted)
	}
	if len(store.removed) != 2 {
		t.Errorf("expected both assets removed, got %v", store.removed)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	_, _, _, svc := newUploadFixture()

	if _, err := svc.Search(context.Background(), "   "); !domain.IsValidation(err) {
		t.Errorf("expected validation error for empty query, got %v", err)
	}
}
