package interview

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-assistant/internal/shared/metrics"
	"job-assistant/internal/shared/server/respond"
	"job-assistant/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the FAQ and the practice interview.
type Handler struct {
	FAQ  *FAQ
	Mock *MockInterview
}

// NewHandler constructs a Handler.
func NewHandler(faq *FAQ) *Handler {
	if faq == nil {
		faq = DefaultFAQ()
	}
	return &Handler{FAQ: faq, Mock: DefaultMockInterview()}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/faq", h.faq)
	rg.POST("/ask", h.ask)
	rg.GET("/mock/roles", h.mockRoles)
	rg.GET("/mock/question", h.mockQuestion)
	rg.POST("/mock/feedback", h.mockFeedback)
}

type faqResponse struct {
	Greeting  string   `json:"greeting"`
	Questions []string `json:"questions"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer  string `json:"answer"`
	Matched bool   `json:"matched"`
}

type feedbackRequest struct {
	Role       string `json:"role"`
	Transcript string `json:"transcript"`
}

func (h *Handler) faq(c *gin.Context) {
	respond.OK(c, faqResponse{Greeting: h.FAQ.Greeting(), Questions: h.FAQ.Questions()})
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	answer, matched, err := h.FAQ.Answer(req.Question)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestion) {
			respond.BadRequest(c, err.Error(), nil)
			return
		}
		respond.Internal(c, "failed to answer question")
		return
	}
	metrics.IncInterviewQuestion(matched)
	if !matched {
		telemetry.Info("interview.unmatched_question", map[string]any{"length": len(req.Question)})
	}
	respond.OK(c, askResponse{Answer: answer, Matched: matched})
}

func (h *Handler) mockRoles(c *gin.Context) {
	respond.OK(c, gin.H{"roles": h.Mock.Roles()})
}

func (h *Handler) mockQuestion(c *gin.Context) {
	index := 0
	if raw := c.Query("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.BadRequest(c, "index must be a non-negative integer", nil)
			return
		}
		index = n
	}
	q, err := h.Mock.Question(c.DefaultQuery("role", "software"), index)
	if err != nil {
		respond.BadRequest(c, err.Error(), gin.H{"roles": h.Mock.Roles()})
		return
	}
	respond.OK(c, q)
}

func (h *Handler) mockFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body", nil)
		return
	}
	fb, err := h.Mock.Review(req.Role, req.Transcript)
	switch {
	case errors.Is(err, ErrUnknownRole), errors.Is(err, ErrEmptyTranscript):
		respond.BadRequest(c, err.Error(), nil)
		return
	case err != nil:
		respond.Internal(c, "failed to review answer")
		return
	}
	telemetry.Info("interview.mock_feedback", map[string]any{
		"role":            fb.Role,
		"filler_words":    fb.FillerWords,
		"keyword_matches": len(fb.KeywordMatches),
	})
	respond.OK(c, fb)
}
