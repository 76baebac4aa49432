package documents

import "time"

// Document is the persisted record of extracted PDF content owned by a user.
// No field changes after creation; the model supports create/read/delete only.
type Document struct {
	ID        string
	UserID    string
	Title     string
	Format    Format
	Content   string
	CreatedAt time.Time
}

// Summary is the list-view projection of a document. Content is omitted on
// purpose for list responses.
type Summary struct {
	ID        string
	Title     string
	Format    Format
	CreatedAt time.Time
}
