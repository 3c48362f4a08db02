package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/bootstrap"
	"job-assistant/internal/shared/config"
	"job-assistant/internal/shared/telemetry"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "0",
		WebPort:         "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:8080"},
		AnalysisTimeout: 5 * time.Second,
		MaxUploadBytes:  1 << 20,
		CacheTTL:        time.Minute,
		CacheMaxEntries: 10,
		RateLimitRPS:    1,
		RateLimitBurst:  5,
		SessionTTL:      time.Minute,
	}
}

func quiet(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	telemetry.SetOutput(io.Discard)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })
}

func TestAPIHealthAndMetrics(t *testing.T) {
	quiet(t)
	app, err := bootstrap.BuildAPI(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"component":"api"`) {
		t.Fatalf("unexpected health response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("expected metrics output, got %s", resp.Body.String())
	}
}

func TestAPIRateLimitsAnalyze(t *testing.T) {
	quiet(t)
	cfg := testConfig()
	cfg.RateLimitBurst = 1
	app, err := bootstrap.BuildAPI(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resume/analyze/", nil))
		codes = append(codes, resp.Code)
	}
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}

	// the sentiment endpoint is not limited
	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resume/test-sentiment/", strings.NewReader(`{"text":"great"}`)))
		if resp.Code != http.StatusOK {
			t.Fatalf("sentiment request %d: status %d", i, resp.Code)
		}
	}
}

func TestWebAgainstAPI(t *testing.T) {
	quiet(t)
	api, err := bootstrap.BuildAPI(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("build api: %v", err)
	}
	apiSrv := httptest.NewServer(api.Router)
	defer apiSrv.Close()

	cfg := testConfig()
	cfg.AnalysisAPIURL = apiSrv.URL + "/api/resume/"
	web, err := bootstrap.BuildWeb(cfg)
	if err != nil {
		t.Fatalf("build web: %v", err)
	}
	webSrv := httptest.NewServer(web.Router)
	defer webSrv.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	upload := func(slot, name, content string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		fw, _ := writer.CreateFormFile("file", name)
		_, _ = fw.Write([]byte(content))
		_ = writer.Close()
		resp, err := client.Post(webSrv.URL+"/tailor/files/"+slot, writer.FormDataContentType(), body)
		if err != nil {
			t.Fatalf("upload %s: %v", slot, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("upload %s: status %d", slot, resp.StatusCode)
		}
	}

	upload("resume", "resume.txt", "Go developer with Docker and PostgreSQL. Strong communication. Improved latency by 30%.")
	upload("job-description", "jd.txt", "We need a Go developer who knows Kubernetes and Docker. Teamwork is essential.")

	resp, err := client.Post(webSrv.URL+"/tailor/analyze", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(webSrv.URL + "/tailor/state")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	defer resp.Body.Close()

	var view struct {
		State  string `json:"state"`
		Result *struct {
			KeywordsToAdd []string `json:"keywordsToAdd"`
			ScoreLabel    string   `json:"scoreLabel"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if view.State != "success" || view.Result == nil {
		t.Fatalf("unexpected view %+v", view)
	}
	if len(view.Result.KeywordsToAdd) == 0 || view.Result.KeywordsToAdd[0] != "kubernetes" {
		t.Fatalf("unexpected keywords %v", view.Result.KeywordsToAdd)
	}
}

func TestWebRootRedirects(t *testing.T) {
	quiet(t)
	cfg := testConfig()
	cfg.AnalysisAPIURL = "http://127.0.0.1:1/api/resume/"
	web, err := bootstrap.BuildWeb(cfg)
	if err != nil {
		t.Fatalf("build web: %v", err)
	}

	resp := httptest.NewRecorder()
	web.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/tailor" {
		t.Fatalf("unexpected redirect %d %q", resp.Code, resp.Header().Get("Location"))
	}
}

func TestBuildWebRequiresAPIURL(t *testing.T) {
	if _, err := bootstrap.BuildWeb(testConfig()); err == nil {
		t.Fatalf("expected error for empty analysis url")
	}
}
