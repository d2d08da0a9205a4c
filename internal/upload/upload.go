// Package upload keeps the car images. Files are validated by decoding the
// actual bytes, never by trusting the filename extension.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// MaxImageBytes caps how much of an upload is buffered before validation.
const MaxImageBytes = 8 << 20

var ErrInvalidImage = errors.New("only PNG and JPEG images are allowed")

type Store struct {
	Dir string
}

// NewStore prepares the uploads directory tree.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "cars"), 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Sniff rejects anything that does not decode as JPEG or PNG.
func Sniff(data []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ErrInvalidImage
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return ErrInvalidImage
	}
}

// SaveCarImage writes the validated bytes under <dir>/cars and returns the
// relative path stored on the car record.
func (s *Store) SaveCarImage(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	diskPath := filepath.Join(s.Dir, "cars", name)
	if err := os.WriteFile(diskPath, data, 0o644); err != nil {
		return "", fmt.Errorf("could not save image: %w", err)
	}
	return filepath.ToSlash(filepath.Join(filepath.Base(s.Dir), "cars", name)), nil
}

// Remove deletes a stored image by its recorded relative path. A missing
// file is not an error, the record is already gone.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	diskPath := filepath.Join(filepath.Dir(s.Dir), filepath.FromSlash(relPath))
	if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
