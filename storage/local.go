package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/anashalam/music-app-backend/domain"
)

// Kind restricts what a saved upload is allowed to contain.
type Kind int

const (
	KindAudio Kind = iota
	KindImage
)

// Store persists uploaded assets and removes them again when a lifecycle
// step fails or the owning row is deleted.
type Store interface {
	Save(file *multipart.FileHeader, kind Kind) (string, error)
	SaveProfilePic(file *multipart.FileHeader) (string, error)
	Remove(url string) error
}

type localStore struct {
	baseDir string
}

// NewLocalStore creates the upload directories up front so a misconfigured
// path fails at startup instead of on the first upload.
func NewLocalStore(baseDir string) (Store, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "profiles")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
		}
	}
	return &localStore{baseDir: baseDir}, nil
}

func (s *localStore) Save(file *multipart.FileHeader, kind Kind) (string, error) {
	return s.save(file, kind, s.baseDir, "/uploads")
}

func (s *localStore) SaveProfilePic(file *multipart.FileHeader) (string, error) {
	return s.save(file, KindImage, filepath.Join(s.baseDir, "profiles"), "/uploads/profiles")
}

func (s *localStore) save(file *multipart.FileHeader, kind Kind, dir, urlPrefix string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	// filetype needs at most the first 261 bytes to identify the format.
	head := make([]byte, 261)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading upload header: %w", err)
	}
	head = head[:n]

	ext, err := checkKind(head, kind)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + "." + ext
	if err := writeStoredFile(filepath.Join(dir, name), head, src); err != nil {
		return "", err
	}
	return urlPrefix + "/" + name, nil
}

// writeStoredFile writes the sniffed header followed by the rest of the
// upload. A partial file left behind by a failed write would be reachable
// under the static prefix, so any failure removes it before returning.
func writeStoredFile(path string, head []byte, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stored file: %w", err)
	}

	if _, err = dst.Write(head); err == nil {
		_, err = io.Copy(dst, src)
	}
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("writing stored file: %w", err)
	}
	return nil
}

// Remove deletes a previously stored asset by its public URL. A missing file
// is not an error so cleanup stays idempotent.
func (s *localStore) Remove(url string) error {
	rel := strings.TrimPrefix(url, "/uploads/")
	if rel == "" || rel == url {
		return nil
	}
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func checkKind(head []byte, kind Kind) (string, error) {
	t, err := filetype.Match(head)
	if err != nil || t == filetype.Unknown {
		return "", domain.NewValidationError("file", "unrecognized file type")
	}
	switch kind {
	case KindAudio:
		if !isAudio(t.Extension) {
			return "", domain.NewValidationError("file", "audio file required")
		}
	case KindImage:
		if !filetype.IsImage(head) {
			return "", domain.NewValidationError("file", "image file required")
		}
	}
	return t.Extension, nil
}

func isAudio(ext string) bool {
	switch ext {
	case matchers.TypeMp3.Extension, matchers.TypeWav.Extension,
		matchers.TypeOgg.Extension, matchers.TypeFlac.Extension,
		matchers.TypeAac.Extension, matchers.TypeM4a.Extension,
		matchers.TypeMp4.Extension:
		return true
	}
	return false
}
