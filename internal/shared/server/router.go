package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdocs-backend/internal/documents"
	"pdfdocs-backend/internal/extract"
	"pdfdocs-backend/internal/shared/config"
	"pdfdocs-backend/internal/shared/server/middleware"
	"pdfdocs-backend/internal/shared/server/respond"
	"pdfdocs-backend/internal/shared/storage/landing"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// The database handle is owned by the caller; a nil handle selects the
// in-memory repo.
func NewRouter(cfg config.Config, sqlDB *sql.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(),
	)

	var repo documents.Repo
	if sqlDB != nil {
		repo = &documents.PGRepo{DB: sqlDB}
	} else {
		repo = documents.NewMemoryRepo()
	}
	docSvc := &documents.Service{
		Landing: landing.New(cfg.LandingDir),
		Extract: extract.PDF{},
		Repo:    repo,
	}
	docHandler := documents.NewHandler(docSvc, cfg.MaxUploadMB<<20)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "PDF Analyzer API"})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	docHandler.RegisterRoutes(api.Group("/documents"))

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
