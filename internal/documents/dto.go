package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Format    Format    `json:"format"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SummaryResponse is the list-view representation; content is omitted.
type SummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Format    Format    `json:"format"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Format:    doc.Format,
		Content:   doc.Content,
		UserID:    doc.UserID,
		CreatedAt: doc.CreatedAt,
	}
}

func toSummaryResponse(sum Summary) SummaryResponse {
	return SummaryResponse{
		ID:        sum.ID,
		Title:     sum.Title,
		Format:    sum.Format,
		CreatedAt: sum.CreatedAt,
	}
}
