// Package resumeclient submits a resume and a job description to the
// analysis service and decodes its answer.
package resumeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"job-assistant/internal/shared/telemetry"
	"job-assistant/resume/contract"
)

const (
	analyzePath      = "analyze/"
	resumeField      = "resume_file"
	jobField         = "job_desc_file"
	maxResponseBytes = 4 << 20
)

// ErrTransport covers every way a request can fail to produce a result:
// network errors, non-2xx statuses and undecodable bodies.
var ErrTransport = errors.New("analysis request failed")

// Document is an uploaded file as it is sent on the wire.
type Document struct {
	Name string
	Data []byte
}

// Client calls the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("analysis base url is required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Analyze posts both documents and returns the decoded result. There are no
// retries; callers decide whether to try again.
func (c *Client) Analyze(ctx context.Context, resume, jobDescription Document) (contract.AnalysisResult, error) {
	body, contentType, err := encodeForm(resume, jobDescription)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: encode form: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return contract.AnalysisResult{}, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var result contract.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return contract.AnalysisResult{}, fmt.Errorf("%w: decode: %w", ErrTransport, err)
	}

	telemetry.Info("analysis_client.response", map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"match_score": result.MatchScore,
	})
	return result, nil
}

func encodeForm(resume, jobDescription Document) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, p := range []struct {
		field string
		doc   Document
	}{
		{resumeField, resume},
		{jobField, jobDescription},
	} {
		fw, err := writer.CreateFormFile(p.field, p.doc.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(p.doc.Data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
