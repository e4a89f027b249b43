package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/extract/extracttest"
	"resume-matcher/internal/shared/config"
)

func buildApp(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:                 "0",
		Env:                  "dev",
		CORSAllowOrigin:      []string{"http://localhost:5173"},
		MaxUploadBytes:       1 << 20,
		AnalyzeRatePerMinute: 1,
		AnalyzeBurst:         burst,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func analysisRequest(t *testing.T) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="resume.docx"`)
	header.Set("Content-Type", extract.MimeDOCX)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(extracttest.DOCX("Jane Doe", "jane@example.com", "Worked as a Django developer.")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.WriteField("jobDescription", "Django and React developer"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthAndMetrics(t *testing.T) {
	router := buildApp(t, 5)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["ok"] != true {
		t.Fatalf("expected ok=true, got %v", health)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("expected analysis counters, got:\n%s", resp.Body.String())
	}
}

func TestAnalyzeThroughRouter(t *testing.T) {
	router := buildApp(t, 5)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, analysisRequest(t))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}

	var result struct {
		JobSkills []string `json:"jobSkills"`
		Match     struct {
			MatchPercentage float64 `json:"matchPercentage"`
		} `json:"match"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The job detects C (inside "react"), Django and React; the résumé has C and Django.
	if result.Match.MatchPercentage != 66.67 {
		t.Fatalf("expected 66.67, got %v (job skills %v)", result.Match.MatchPercentage, result.JobSkills)
	}
}

func TestAnalyzeRoutesAreRateLimited(t *testing.T) {
	router := buildApp(t, 1)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, analysisRequest(t))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first analysis 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, analysisRequest(t))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second analysis 429, got %d", second.Code)
	}

	form := httptest.NewRecorder()
	router.ServeHTTP(form, httptest.NewRequest(http.MethodGet, "/", nil))
	if form.Code != http.StatusOK {
		t.Fatalf("expected form 200 while analyze group is limited, got %d", form.Code)
	}
}

func TestBuildRejectsZeroUploadLimit(t *testing.T) {
	if _, err := bootstrap.Build(config.Config{Env: "dev"}); err == nil {
		t.Fatalf("expected error for zero upload limit")
	}
}
