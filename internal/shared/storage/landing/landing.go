// Package landing holds uploaded files on transient local storage for the
// duration of a single request. Whoever receives a key from Save owns its
// removal.
package landing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdfdocs-backend/internal/shared/util"
)

// Store writes landed blobs under a single base directory.
type Store struct {
	baseDir string
}

// New creates a landing store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under a random prefix and returns the key.
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, fmt.Errorf("sanitize file name: %w", err)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	key := fmt.Sprintf("%s_%s", randomID(), sanitizedName)
	fullPath := filepath.Join(s.baseDir, key)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("write body: %w", err)
	}
	return key, written, nil
}

// ReadFile returns the full contents of a landed blob.
func (s *Store) ReadFile(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(fullPath)
}

// Remove deletes a landed blob. A missing blob is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid landing key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
