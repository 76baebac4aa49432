package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfdocs-backend/internal/extract"
	"pdfdocs-backend/internal/shared/telemetry"
)

// Extractor produces text and structural metadata from raw PDF bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (extract.Result, error)
}

// LandingStore holds an uploaded blob on transient storage for the duration
// of one request.
type LandingStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error)
	ReadFile(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// Service coordinates landing, extraction, representation and persistence.
type Service struct {
	Landing LandingStore
	Extract Extractor
	Repo    Repo
}

// Ingest runs the upload pipeline: land the blob, extract, render the
// requested representation, persist. The landed blob is removed on every
// exit path once Save succeeds. Identity is never defaulted here; an empty
// userID is the boundary's problem to resolve before calling.
func (s *Service) Ingest(ctx context.Context, userID, title string, format Format, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(userID) == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	key, _, err := s.Landing.Save(ctx, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("land upload: %w", err)
	}
	defer s.removeLanded(key)

	data, err := s.Landing.ReadFile(ctx, key)
	if err != nil {
		return Document{}, fmt.Errorf("read landed blob: %w", err)
	}

	res, err := s.Extract.Extract(ctx, data)
	if err != nil {
		return Document{}, fmt.Errorf("extract pdf: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = fileName
	}

	doc := Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Format:    format,
		Content:   renderContent(res, format),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("persist document: %w", err)
	}
	return doc, nil
}

// removeLanded is best-effort cleanup; failures are logged, never escalated.
// The request context may already be canceled, so cleanup uses its own.
func (s *Service) removeLanded(key string) {
	if err := s.Landing.Remove(context.Background(), key); err != nil {
		telemetry.Warn("landing.cleanup_failed", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// ListByUser returns the user's document summaries, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns the full document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes the document when the claimed owner matches. A miss is
// silent by design.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id, userID)
}
