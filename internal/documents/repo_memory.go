package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document // id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

// ListByUser returns summaries for a user, newest first, ties broken by id.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Summary{}
	for _, doc := range r.docs {
		if doc.UserID != userID {
			continue
		}
		out = append(out, Summary{
			ID:        doc.ID,
			Title:     doc.Title,
			Format:    doc.Format,
			CreatedAt: doc.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetByID returns the full record including content.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Delete removes the document only when both id and owner match.
func (r *MemoryRepo) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok && doc.UserID == userID {
		delete(r.docs, id)
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
