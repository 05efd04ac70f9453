package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/justsurfingit/jobhunt/internal/services"
)

type stubAnalyst struct {
	profiles []string
}

func (a *stubAnalyst) FetchJobsContent(ctx context.Context, link, profile string) string {
	a.profiles = append(a.profiles, profile)
	return "jobs"
}

func (a *stubAnalyst) StructureJobsContent(ctx context.Context, content string) []models.Job {
	return []models.Job{{JobTitle: "Go Developer", Company: "Gophers", JobType: models.JobTypeSoftwareEngineer}}
}

func (a *stubAnalyst) FollowUpLink(ctx context.Context, job models.Job) models.Job { return job }

func (a *stubAnalyst) WriteCoverLetter(ctx context.Context, job models.Job) string {
	return "Dear Gophers"
}

type stubStore struct{}

func (stubStore) StoreCoverLetter(ctx context.Context, title, letter string) string { return "doc-1" }

type stubSheet struct{ rows int }

func (s *stubSheet) AppendRows(ctx context.Context, rows [][]interface{}) (int64, error) {
	s.rows += len(rows)
	return int64(len(rows)), nil
}

func newTestRouter(analyst *stubAnalyst, sheet *stubSheet) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pipeline := services.NewPipelineService(analyst, stubStore{}, sheet, 0)
	r := gin.New()
	NewJobHandler(pipeline, "default profile").RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(&stubAnalyst{}, &stubSheet{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestExtractJobsRejectsBadLink(t *testing.T) {
	r := newTestRouter(&stubAnalyst{}, &stubSheet{})
	for _, body := range []string{`{}`, `{"link": "not a url"}`, `not json`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/jobs/extract", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestExtractJobsUsesDefaultProfile(t *testing.T) {
	analyst := &stubAnalyst{}
	sheet := &stubSheet{}
	r := newTestRouter(analyst, sheet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/jobs/extract", strings.NewReader(`{"link": "https://jobs.example/list"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp dtos.ExtractResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Jobs) != 1 || resp.Jobs[0].JobSource != "jobs.example" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if analyst.profiles[0] != "default profile" {
		t.Fatalf("expected default profile, got %q", analyst.profiles[0])
	}
	if sheet.rows != 0 {
		t.Fatalf("extract must not write rows")
	}
}

func TestCreateRun(t *testing.T) {
	analyst := &stubAnalyst{}
	sheet := &stubSheet{}
	r := newTestRouter(analyst, sheet)

	body := `{"link": "https://jobs.example/list", "user_profile": "a Go developer"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp dtos.RunResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result == nil || resp.Result.RowsAppended != 1 || sheet.rows != 1 {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
	if got := resp.Result.Jobs[0].CoverLetterLink; got != services.GoogleDocsLink+"doc-1" {
		t.Fatalf("unexpected cover letter link %q", got)
	}
	if analyst.profiles[0] != "a Go developer" {
		t.Fatalf("request profile ignored: %q", analyst.profiles[0])
	}
}
