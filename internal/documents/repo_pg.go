package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document row. A single insert, so it either lands
// fully or not at all.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, title, format, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Title,
		string(doc.Format),
		doc.Content,
		doc.CreatedAt,
	)
	return err
}

// ListByUser returns summaries for a user, newest first. Ties on created_at
// break by id so the order is stable.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	const query = `
SELECT id, title, format, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var format string
		if err := rows.Scan(&sum.ID, &sum.Title, &format, &sum.CreatedAt); err != nil {
			return nil, err
		}
		sum.Format = Format(format)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetByID fetches the full record including content.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, user_id, title, format, content, created_at
FROM documents
WHERE id = $1`

	var doc Document
	var format string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&format,
		&doc.Content,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.Format = Format(format)
	return doc, nil
}

// Delete removes the row matching both id and owner. Rows affected is
// intentionally not inspected; the caller cannot distinguish "wrong owner"
// from "already deleted" and the API does not leak that distinction.
func (r *PGRepo) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	_, err := r.DB.ExecContext(ctx, query, id, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
