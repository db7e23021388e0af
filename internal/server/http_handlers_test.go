package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumatch/internal/config"
	"resumatch/internal/embedding"
	"resumatch/internal/ingest"
	"resumatch/internal/jobs"
	"resumatch/internal/observability"
	"resumatch/internal/types"
)

const testResumeText = `John Smith
Email: john.smith@example.com
Phone: (555) 123-4567

Skills: Python, JavaScript, React, SQL, PostgreSQL, Docker, AWS

Education: Bachelor of Science in Computer Science

Experience: 5 years of experience building web applications.`

func newTestConfig() *config.Config {
	timeout := 5 * time.Second
	retries := 1

	cfg := &config.Config{}
	cfg.Embedding.Provider = "none"
	cfg.Embedding.Timeout = &timeout
	cfg.Embedding.MaxRetries = &retries
	cfg.App.MaxFileSize = 1 << 20
	cfg.Observability.HealthCheck.Timeout = time.Second
	return cfg
}

// newTestServer wires a full server with keyword-only matching, the demo
// job catalog and observability disabled.
func newTestServer(t *testing.T, apiKeys []string) (*Server, *http.ServeMux) {
	t.Helper()

	logger := newTestLogger(t)
	cfg := newTestConfig()

	extractor, err := ingest.NewExtractor(context.Background(), logger)
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}

	embedSvc, err := embedding.NewService(&cfg.Embedding, logger)
	if err != nil {
		t.Fatalf("failed to create embedding service: %v", err)
	}

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	serverCfg := ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	deps := Dependencies{
		Extractor:  extractor,
		Embeddings: embedSvc,
		Store:      jobs.NewMemoryStore(logger),
	}

	s := NewServer(cfg, serverCfg, deps, logger)
	s.initAnalysisService(om)
	return s, s.setupRoutes(om)
}

func doJSON(mux *http.ServeMux, method, path string, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestHealthHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	w := doJSON(mux, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	if resp["service"] != "resumatch" {
		t.Errorf("service = %v, want resumatch", resp["service"])
	}

	embeddingStatus, ok := resp["embedding"].(map[string]any)
	if !ok {
		t.Fatalf("embedding status missing: %v", resp)
	}
	if embeddingStatus["mode"] != "keyword-only" {
		t.Errorf("embedding mode = %v, want keyword-only", embeddingStatus["mode"])
	}
}

func TestStatsHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	w := doJSON(mux, http.MethodGet, "/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	rateLimiting, ok := resp["rate_limiting"].(map[string]any)
	if !ok || rateLimiting["enabled"] != false {
		t.Errorf("rate_limiting = %v, want disabled", resp["rate_limiting"])
	}
}

func TestListJobsHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	w := doJSON(mux, http.MethodGet, "/api/v1/jobs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp types.JobList
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Jobs) != 6 {
		t.Errorf("len(Jobs) = %d, want 6", len(resp.Jobs))
	}
}

func TestSearchJobsHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	w := doJSON(mux, http.MethodGet, "/api/v1/jobs?q=engineer", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp types.JobList
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Jobs) == 0 || len(resp.Jobs) >= 6 {
		t.Errorf("len(Jobs) = %d, want a non-empty subset", len(resp.Jobs))
	}
	for _, job := range resp.Jobs {
		text := strings.ToLower(job.Title + " " + job.Company + " " + job.Description + " " + job.Requirements)
		if !strings.Contains(text, "engineer") {
			t.Errorf("job %s does not match query", job.ID)
		}
	}
}

func TestGetJobHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	w := doJSON(mux, http.MethodGet, "/api/v1/jobs/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var job types.JobPosting
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if job.ID != "1" {
		t.Errorf("job.ID = %q, want 1", job.ID)
	}

	if w := doJSON(mux, http.MethodGet, "/api/v1/jobs/999", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAddJobHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	body := `{"title":"Platform Engineer","company":"Acme","description":"Build internal platforms with Go and Kubernetes."}`
	w := doJSON(mux, http.MethodPost, "/api/v1/jobs", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var job types.JobPosting
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if job.ID != "7" {
		t.Errorf("job.ID = %q, want 7", job.ID)
	}

	// Missing required fields is rejected
	if w := doJSON(mux, http.MethodPost, "/api/v1/jobs", `{"company":"Acme"}`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid posting status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateAndDeleteJobHandlers(t *testing.T) {
	_, mux := newTestServer(t, nil)

	body := `{"title":"Updated Title","description":"Updated description for the posting."}`
	w := doJSON(mux, http.MethodPut, "/api/v1/jobs/2", body)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var job types.JobPosting
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if job.ID != "2" || job.Title != "Updated Title" {
		t.Errorf("updated job = %+v, want id 2 with new title", job)
	}

	if w := doJSON(mux, http.MethodPut, "/api/v1/jobs/999", body); w.Code != http.StatusNotFound {
		t.Errorf("update unknown id status = %d, want %d", w.Code, http.StatusNotFound)
	}

	if w := doJSON(mux, http.MethodDelete, "/api/v1/jobs/3", ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w := doJSON(mux, http.MethodDelete, "/api/v1/jobs/3", ""); w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMatchHandler(t *testing.T) {
	_, mux := newTestServer(t, nil)

	reqBody, _ := json.Marshal(MatchRequest{ResumeText: testResumeText})
	w := doJSON(mux, http.MethodPost, "/api/v1/match", string(reqBody))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Matches) != 6 {
		t.Errorf("len(Matches) = %d, want 6", len(result.Matches))
	}
	if result.Resume.Email != "john.smith@example.com" {
		t.Errorf("Resume.Email = %q, want extracted email", result.Resume.Email)
	}
	for i := 1; i < len(result.Matches); i++ {
		if result.Matches[i].SimilarityScore > result.Matches[i-1].SimilarityScore {
			t.Errorf("matches not sorted by score at index %d", i)
		}
	}
}

func TestMatchHandlerSelectedJobs(t *testing.T) {
	_, mux := newTestServer(t, nil)

	reqBody, _ := json.Marshal(MatchRequest{ResumeText: testResumeText, JobIDs: []string{"2"}})
	w := doJSON(mux, http.MethodPost, "/api/v1/match", string(reqBody))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].JobID != "2" {
		t.Errorf("Matches = %+v, want single match for job 2", result.Matches)
	}
}

func TestMatchHandlerValidation(t *testing.T) {
	_, mux := newTestServer(t, nil)

	// Missing resume text
	if w := doJSON(mux, http.MethodPost, "/api/v1/match", `{"resumeText":"  "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank text status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Wrong content type
	r := httptest.NewRequest(http.MethodPost, "/api/v1/match", strings.NewReader(`{"resumeText":"x"}`))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong content type status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// Unknown job ids only
	reqBody, _ := json.Marshal(MatchRequest{ResumeText: testResumeText, JobIDs: []string{"999"}})
	if w := doJSON(mux, http.MethodPost, "/api/v1/match", string(reqBody)); w.Code != http.StatusNotFound {
		t.Errorf("unknown jobs status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAnalyzeHandlerUpload(t *testing.T) {
	_, mux := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.txt")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte(testResumeText)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.WriteField("jobIds", "1,2"); err != nil {
		t.Fatalf("failed to write jobIds field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Matches) != 2 {
		t.Errorf("len(Matches) = %d, want 2", len(result.Matches))
	}
	if result.Resume.Name == "" {
		t.Error("Resume.Name should be extracted from the upload")
	}
}

func TestAnalyzeHandlerUnsupportedType(t *testing.T) {
	_, mux := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("resume", "resume.docx")
	_, _ = fw.Write([]byte("not a supported format"))
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, mux := newTestServer(t, []string{"valid-key-12345"})

	// No key
	if w := doJSON(mux, http.MethodGet, "/api/v1/jobs", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Wrong key
	r := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	r.Header.Set("X-API-Key", "wrong-key")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid key status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Valid key via header
	r = httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	r.Header.Set("X-API-Key", "valid-key-12345")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("valid key status = %d, want %d", w.Code, http.StatusOK)
	}

	// Valid key via bearer token
	r = httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	r.Header.Set("Authorization", "Bearer valid-key-12345")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("bearer token status = %d, want %d", w.Code, http.StatusOK)
	}

	// Health stays public
	if w := doJSON(mux, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := newTestLogger(t)
	cfg := newTestConfig()
	cfg.Server.RateLimit = config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  2,
		ByIP:           true,
		Window:         time.Minute,
	}

	embedSvc, err := embedding.NewService(&cfg.Embedding, logger)
	if err != nil {
		t.Fatalf("failed to create embedding service: %v", err)
	}
	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	s := NewServer(cfg, ServerConfig{
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}, Dependencies{
		Embeddings: embedSvc,
		Store:      jobs.NewMemoryStore(logger),
	}, logger)
	s.initAnalysisService(om)
	defer s.RateLimiter.Close()

	mux := s.setupRoutes(om)

	for i := range 2 {
		if w := doJSON(mux, http.MethodGet, "/api/v1/jobs", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	if w := doJSON(mux, http.MethodGet, "/api/v1/jobs", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}
