package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid image payload")

// Store writes uploaded images into one directory. Services depend on the
// narrow Save method so tests can swap in a fake.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Save(payload string) (string, error) {
	return SaveBase64(s.Dir, payload)
}

func (s *Store) Remove(rel string) error {
	return Remove(s.Dir, rel)
}

// extensions by data-URI media type; anything else is rejected.
var extByMediaType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveBase64 decodes a "data:image/...;base64,..." payload (a bare base64
// string is treated as PNG) and writes it under dir with a random name.
// Returns the path relative to dir's parent, suitable for serving statically.
func SaveBase64(dir, payload string) (string, error) {
	if payload == "" {
		return "", ErrInvalidImage
	}

	ext := ".png"
	raw := payload
	if strings.HasPrefix(payload, "data:") {
		mediaType, rest, ok := strings.Cut(strings.TrimPrefix(payload, "data:"), ";base64,")
		if !ok {
			return "", ErrInvalidImage
		}
		e, known := extByMediaType[mediaType]
		if !known {
			return "", ErrInvalidImage
		}
		ext = e
		raw = rest
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidImage
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return filepath.Join(filepath.Base(dir), name), nil
}

// Remove deletes a previously saved image, ignoring files already gone.
func Remove(mediaDir, rel string) error {
	if rel == "" {
		return nil
	}
	path := filepath.Join(filepath.Dir(mediaDir), rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
