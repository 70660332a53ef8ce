package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anashalam/music-app-backend/domain"
)

var (
	mp3Bytes = append([]byte("ID3"), bytes.Repeat([]byte{0x00}, 300)...)
	pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0x00}, 300)...)
)

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to parse form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore returned error: %v", err)
	}
	return store, dir
}

func TestSaveAudio(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Save(makeFileHeader(t, "song.mp3", mp3Bytes), KindAudio)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".mp3") {
		t.Errorf("unexpected url: %s", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, mp3Bytes) {
		t.Error("stored file does not match the upload")
	}
}

func TestSaveRejectsWrongKind(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Save(makeFileHeader(t, "sneaky.mp3", pngBytes), KindAudio); !domain.IsValidation(err) {
		t.Errorf("expected validation error for image posing as audio, got %v", err)
	}
	if _, err := store.Save(makeFileHeader(t, "sneaky.png", mp3Bytes), KindImage); !domain.IsValidation(err) {
		t.Errorf("expected validation error for audio posing as image, got %v", err)
	}
	if _, err := store.Save(makeFileHeader(t, "junk.bin", bytes.Repeat([]byte{0x01}, 300)), KindAudio); !domain.IsValidation(err) {
		t.Errorf("expected validation error for unknown bytes, got %v", err)
	}
}

func TestSaveProfilePicGoesToProfilesDir(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.SaveProfilePic(makeFileHeader(t, "me.png", pngBytes))
	if err != nil {
		t.Fatalf("SaveProfilePic returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/profiles/") {
		t.Errorf("unexpected url: %s", url)
	}
	rel := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Save(makeFileHeader(t, "song.mp3", mp3Bytes), KindAudio)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := store.Remove(url); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))); !os.IsNotExist(err) {
		t.Error("file should be gone after Remove")
	}
	if err := store.Remove(url); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteStoredFileRemovesPartialOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.mp3")

	err := writeStoredFile(path, []byte("ID3"), failingReader{})
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("partial file must not be left behind after a failed write")
	}
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	store, dir := newTestStore(t)

	marker := filepath.Join(filepath.Dir(dir), "outside.txt")
	if err := os.WriteFile(marker, []byte("keep"), 0o600); err != nil {
		t.Fatalf("failed to write marker: %v", err)
	}

	if err := store.Remove("/uploads/../outside.txt"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Error("path traversal must not delete files outside the upload dir")
	}
	if err := store.Remove("/etc/passwd"); err != nil {
		t.Errorf("non-upload url should be ignored, got %v", err)
	}
}
