package tailoring

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"job-assistant/internal/shared/metrics"
	"job-assistant/internal/shared/server/middleware"
	"job-assistant/internal/shared/server/respond"
	"job-assistant/internal/shared/telemetry"
	"job-assistant/internal/shared/util"
)

const (
	sessionCookie   = "tailor_session"
	sessionCtxKey   = "tailorSession"
	pagePath        = "/tailor"
	defaultMaxBytes = 10 << 20
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("tailoring").Funcs(template.FuncMap{
		"slotArgs": func(slot, label string, file *FileView, hint string) map[string]any {
			return map[string]any{"Slot": slot, "Label": label, "File": file, "Hint": hint}
		},
	}).ParseFS(templateFS, "templates/*.html"))
}

// Handler serves the tailoring page.
type Handler struct {
	Sessions       *SessionStore
	MaxUploadBytes int64
	SecureCookie   bool
	// AnalyzeMiddleware runs before analyze and retry, typically a rate limit.
	AnalyzeMiddleware []gin.HandlerFunc

	tmpl *template.Template
}

// NewHandler constructs a Handler.
func NewHandler(sessions *SessionStore, maxUploadBytes int64, secureCookie bool, analyzeMiddleware ...gin.HandlerFunc) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxBytes
	}
	return &Handler{
		Sessions:          sessions,
		MaxUploadBytes:    maxUploadBytes,
		SecureCookie:      secureCookie,
		AnalyzeMiddleware: analyzeMiddleware,
		tmpl:              Templates(),
	}
}

// RegisterRoutes attaches the page routes under /tailor.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(pagePath, h.withSession)
	g.GET("", h.page)
	g.GET("/state", h.state)
	g.POST("/files/:slot", h.upload)
	g.POST("/files/:slot/delete", h.remove)
	g.POST("/analyze", append(append([]gin.HandlerFunc{}, h.AnalyzeMiddleware...), h.analyze)...)
	g.POST("/retry", append(append([]gin.HandlerFunc{}, h.AnalyzeMiddleware...), h.retry)...)
	g.POST("/reset", h.reset)
}

// withSession resolves the visitor's session from its cookie, starting a new
// one when the cookie is missing or has expired.
func (h *Handler) withSession(c *gin.Context) {
	var sess *Session
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		sess, _ = h.Sessions.Get(id)
	}
	if sess == nil {
		sess = h.Sessions.Create()
		telemetry.Info("tailoring.session_started", map[string]any{
			"session_id": sess.ID,
			"request_id": middleware.RequestIDFromContext(c),
		})
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(h.Sessions.ttl.Seconds()), "/", "", h.SecureCookie, true)
	c.Set(sessionCtxKey, sess)
	middleware.SetSessionID(c, sess.ID)
	c.Next()
}

func sessionFrom(c *gin.Context) *Session {
	return c.MustGet(sessionCtxKey).(*Session)
}

func (h *Handler) page(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{Template: h.tmpl, Name: "page.html", Data: sessionFrom(c).View()})
}

func (h *Handler) state(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	respond.OK(c, sessionFrom(c).View())
}

func (h *Handler) upload(c *gin.Context) {
	slot, err := ParseSlot(c.Param("slot"))
	if err != nil {
		respond.BadRequest(c, "unknown upload slot", map[string]any{"slot": c.Param("slot")})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.TooLarge(c, tooLarge.Limit)
			return
		}
		respond.BadRequest(c, "file is required", nil)
		return
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.BadRequest(c, "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.BadRequest(c, "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.BadRequest(c, "unable to read file", nil)
		return
	}

	h.transition(c, "upload", func(sess *Session) error {
		return sess.Coordinator.SetFile(slot, NewFile(name, data))
	})
}

func (h *Handler) remove(c *gin.Context) {
	slot, err := ParseSlot(c.Param("slot"))
	if err != nil {
		respond.BadRequest(c, "unknown upload slot", map[string]any{"slot": c.Param("slot")})
		return
	}
	h.transition(c, "remove", func(sess *Session) error {
		return sess.Coordinator.RemoveFile(slot)
	})
}

func (h *Handler) analyze(c *gin.Context) {
	h.transition(c, "analyze", func(sess *Session) error {
		return sess.Panel.Analyze(requestContext(c))
	})
}

func (h *Handler) retry(c *gin.Context) {
	h.transition(c, "retry", func(sess *Session) error {
		return sess.Panel.Retry(requestContext(c))
	})
}

func (h *Handler) reset(c *gin.Context) {
	h.transition(c, "reset", func(sess *Session) error {
		return sess.Panel.Reset()
	})
}

// transition applies one user action and sends the browser back to the page.
// Refused actions and failed analyses are logged; the page shows the outcome.
func (h *Handler) transition(c *gin.Context, name string, action func(*Session) error) {
	sess := sessionFrom(c)
	before := sess.Panel.Snapshot().State
	err := action(sess)
	after := sess.Panel.Snapshot().State
	middleware.SetStateTransition(c, before.String(), after.String())

	outcome := "ok"
	if err != nil {
		fields := map[string]any{
			"session_id": sess.ID,
			"request_id": middleware.RequestIDFromContext(c),
			"path":       c.FullPath(),
			"state":      after.String(),
			"error":      err.Error(),
		}
		switch {
		case errors.Is(err, ErrBusy), errors.Is(err, ErrNotReady):
			outcome = "refused"
			telemetry.Warn("tailoring.action_refused", fields)
		default:
			outcome = "failed"
			telemetry.Error("tailoring.analysis_failed", fields)
		}
	}
	metrics.IncTailoringAction(name, outcome)
	respond.SeeOther(c, pagePath)
}

// requestContext keeps request values but not cancellation: an analysis in
// flight runs to completion even if the browser goes away.
func requestContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
