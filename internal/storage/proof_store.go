package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotAnImage = errors.New("file must be an image")
	ErrTooLarge   = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile  = errors.New("file is empty")
)

// ProofStore persists proof-of-completion images and returns their public URL.
type ProofStore interface {
	Save(ctx context.Context, r io.Reader, declaredType string) (string, error)
	Remove(ctx context.Context, url string) error
}

// LocalProofStore keeps images in a directory served as static files.
type LocalProofStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewLocalProofStore(dir, urlPrefix string, maxBytes int64) *LocalProofStore {
	return &LocalProofStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
	}
}

// Dir returns the directory images are written to.
func (s *LocalProofStore) Dir() string {
	return s.dir
}

// Save validates r as an image and writes it under a random uuid name.
func (s *LocalProofStore) Save(_ context.Context, r io.Reader, declaredType string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(declaredType), "image/") {
		return "", ErrNotAnImage
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", ErrNotAnImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + detected.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes the file behind a URL previously returned by Save.
func (s *LocalProofStore) Remove(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return fmt.Errorf("url %q is not managed by this store", url)
	}
	name := filepath.Base(url)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
