package documents

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdfdocs-backend/internal/shared/server/middleware"
	"pdfdocs-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/user/:userId", h.listByUser)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		// Multipart parsing does not always wrap *http.MaxBytesError, so
		// fall back to matching its message.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			respond.Error(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		respond.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	userID := h.resolveUserID(c, c.PostForm("userId"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "userId is required")
		return
	}

	format, err := ParseFormat(c.PostForm("format"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "format must be one of: text, json")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.Svc.Ingest(c.Request.Context(), userID, c.PostForm("title"), format, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to process PDF")
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{"success": true, "document": toResponse(doc)})
}

func (h *Handler) listByUser(c *gin.Context) {
	docs, err := h.Svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to fetch documents")
		}
		return
	}

	resp := make([]SummaryResponse, 0, len(docs))
	for _, sum := range docs {
		resp = append(resp, toSummaryResponse(sum))
	}
	respond.OK(c, gin.H{"success": true, "documents": resp})
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Document not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to fetch document")
		}
		return
	}
	respond.OK(c, gin.H{"success": true, "document": toResponse(doc)})
}

type deleteRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) remove(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := h.resolveUserID(c, req.UserID)
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to delete document")
		}
		return
	}
	respond.OK(c, gin.H{"success": true, "message": "Document deleted successfully"})
}

// resolveUserID prefers the explicit request value and falls back to the
// identity captured at the boundary. No default identity exists beyond that.
func (h *Handler) resolveUserID(c *gin.Context, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return middleware.UserIDFromContext(c)
}
