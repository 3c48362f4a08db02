package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/shared/server/respond"
	"job-assistant/internal/shared/telemetry"
	"job-assistant/internal/shared/util"
)

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. maxUploadBytes bounds the whole request body.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze/", h.analyze)
	rg.POST("/test-sentiment/", h.testSentiment)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	resume, err := readUpload(c, "resume_file")
	if err == nil {
		var job Upload
		job, err = readUpload(c, "job_desc_file")
		if err == nil {
			h.runAnalysis(c, resume, job)
			return
		}
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.TooLarge(c, tooLarge.Limit)
	case errors.Is(err, ErrMissingFile):
		respond.BadRequest(c, missingFilesMessage, nil)
	default:
		respond.BadRequest(c, "unable to read uploaded files", nil)
	}
}

func (h *Handler) runAnalysis(c *gin.Context, resume, job Upload) {
	outcome, err := h.Svc.Analyze(c.Request.Context(), resume, job)
	if err != nil {
		if errors.Is(err, ErrMissingFile) {
			respond.BadRequest(c, missingFilesMessage, nil)
			return
		}
		telemetry.Error("analysis.failed", map[string]any{"error": err.Error()})
		respond.Internal(c, "failed to analyze resume")
		return
	}
	if outcome.Cached {
		c.Header("X-Analysis-Cache", "hit")
	}
	respond.OK(c, outcome.Result)
}

func (h *Handler) testSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	text := defaultSentimentText
	if req.Text != nil {
		text = *req.Text
	}
	respond.OK(c, sentimentResponse{Sentiment: h.Svc.Sentiment(text)})
}

func readUpload(c *gin.Context, field string) (Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Upload{}, err
		}
		return Upload{}, fmt.Errorf("%s: %w", field, ErrMissingFile)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("%s: %w", field, ErrUnreadable)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, fmt.Errorf("%s: %w", field, ErrUnreadable)
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		// the payload is still sniffed for its format
		name = ""
	}
	return Upload{Name: name, Data: data}, nil
}
