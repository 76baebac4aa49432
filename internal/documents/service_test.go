package documents

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"pdfdocs-backend/internal/extract"
	"pdfdocs-backend/internal/shared/storage/landing"
)

type stubExtractor struct {
	res   extract.Result
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (extract.Result, error) {
	s.calls++
	if s.err != nil {
		return extract.Result{}, s.err
	}
	return s.res, nil
}

type failingCreateRepo struct {
	*MemoryRepo
}

func (r *failingCreateRepo) Create(ctx context.Context, doc Document) error {
	return errors.New("connection refused")
}

func newTestService(t *testing.T, ext Extractor, repo Repo) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return &Service{Landing: landing.New(dir), Extract: ext, Repo: repo}, dir
}

func landingEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("read landing dir: %v", err)
	}
	return len(entries)
}

func TestIngestPersistsAndCleansLanding(t *testing.T) {
	ext := &stubExtractor{res: extract.Result{Text: "Hello World", PageCount: 1}}
	repo := NewMemoryRepo()
	svc, dir := newTestService(t, ext, repo)

	doc, err := svc.Ingest(context.Background(), "user-1", "", FormatText, "hello.pdf", strings.NewReader("%PDF-1.4 payload"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("expected generated id")
	}
	if doc.Title != "hello.pdf" {
		t.Fatalf("expected title to default to file name, got %q", doc.Title)
	}
	if doc.Content != "Hello World" {
		t.Fatalf("text format must persist extractor text verbatim, got %q", doc.Content)
	}
	if doc.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	stored, err := repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetByID after ingest: %v", err)
	}
	if stored.UserID != "user-1" {
		t.Fatalf("unexpected owner %q", stored.UserID)
	}

	if n := landingEntries(t, dir); n != 0 {
		t.Fatalf("expected landing dir to be empty after success, found %d entries", n)
	}
}

func TestIngestJSONFormat(t *testing.T) {
	ext := &stubExtractor{res: extract.Result{
		Text:      "Hello World",
		PageCount: 1,
		Metadata:  map[string]string{"Title": "Greeting"},
	}}
	svc, _ := newTestService(t, ext, NewMemoryRepo())

	doc, err := svc.Ingest(context.Background(), "user-1", "greeting", FormatJSON, "hello.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.Title != "greeting" {
		t.Fatalf("expected explicit title to win, got %q", doc.Title)
	}

	var decoded struct {
		Text     string            `json:"text"`
		Metadata map[string]string `json:"metadata"`
		NumPages int               `json:"numpages"`
	}
	if err := json.Unmarshal([]byte(doc.Content), &decoded); err != nil {
		t.Fatalf("decode json content: %v", err)
	}
	if decoded.NumPages != 1 {
		t.Fatalf("expected numpages 1, got %d", decoded.NumPages)
	}
	if !strings.Contains(decoded.Text, "Hello World") {
		t.Fatalf("expected text to contain Hello World, got %q", decoded.Text)
	}
}

func TestIngestExtractFailureDoesNotPersist(t *testing.T) {
	ext := &stubExtractor{err: errors.New("parse pdf: bad xref")}
	repo := NewMemoryRepo()
	svc, dir := newTestService(t, ext, repo)

	_, err := svc.Ingest(context.Background(), "user-1", "", FormatText, "broken.pdf", strings.NewReader("not a pdf"))
	if err == nil {
		t.Fatal("expected extraction error")
	}

	docs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no persisted documents, got %d", len(docs))
	}

	if n := landingEntries(t, dir); n != 0 {
		t.Fatalf("expected landing dir to be cleaned after failure, found %d entries", n)
	}
}

func TestIngestPersistFailureStillCleansLanding(t *testing.T) {
	ext := &stubExtractor{res: extract.Result{Text: "x", PageCount: 1}}
	repo := &failingCreateRepo{MemoryRepo: NewMemoryRepo()}
	svc, dir := newTestService(t, ext, repo)

	_, err := svc.Ingest(context.Background(), "user-1", "", FormatText, "doc.pdf", strings.NewReader("%PDF-1.4"))
	if err == nil {
		t.Fatal("expected persistence error")
	}

	if n := landingEntries(t, dir); n != 0 {
		t.Fatalf("expected landing dir to be cleaned after store failure, found %d entries", n)
	}
}

func TestIngestRequiresUserID(t *testing.T) {
	ext := &stubExtractor{res: extract.Result{Text: "x"}}
	svc, _ := newTestService(t, ext, NewMemoryRepo())

	_, err := svc.Ingest(context.Background(), "   ", "", FormatText, "doc.pdf", strings.NewReader("%PDF-1.4"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if ext.calls != 0 {
		t.Fatalf("extractor must not run without identity, ran %d times", ext.calls)
	}
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	older := Document{ID: "a", UserID: "u", Title: "first", Format: FormatText, CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := Document{ID: "b", UserID: "u", Title: "second", Format: FormatText, CreatedAt: time.Now().UTC()}
	for _, doc := range []Document{older, newer} {
		if err := repo.Create(ctx, doc); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	docs, err := svc.ListByUser(ctx, "u")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "b" || docs[1].ID != "a" {
		t.Fatalf("expected newest first, got %s then %s", docs[0].ID, docs[1].ID)
	}
}

func TestDeleteWrongOwnerIsSilentNoOp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	ctx := context.Background()

	doc := Document{ID: "doc-1", UserID: "owner", Title: "t", Format: FormatText, CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "doc-1", "intruder"); err != nil {
		t.Fatalf("Delete by wrong owner must succeed silently: %v", err)
	}
	if _, err := svc.Get(ctx, "doc-1"); err != nil {
		t.Fatalf("document must survive wrong-owner delete: %v", err)
	}

	if err := svc.Delete(ctx, "doc-1", "owner"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, err := svc.Get(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after owner delete, got %v", err)
	}
}
