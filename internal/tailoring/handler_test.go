package tailoring

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assistant/internal/resumeclient"
)

type pageClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newPageClient(t *testing.T, client AnalysisClient, maxBytes int64) *pageClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewSessionStore(client, time.Minute), maxBytes, false)
	r := gin.New()
	h.RegisterRoutes(&r.RouterGroup)
	return &pageClient{t: t, router: r}
}

func (p *pageClient) do(req *http.Request) *httptest.ResponseRecorder {
	p.t.Helper()
	if p.cookie != nil {
		req.AddCookie(p.cookie)
	}
	resp := httptest.NewRecorder()
	p.router.ServeHTTP(resp, req)
	for _, c := range resp.Result().Cookies() {
		if c.Name == sessionCookie {
			p.cookie = c
		}
	}
	return resp
}

func (p *pageClient) post(path string) *httptest.ResponseRecorder {
	return p.do(httptest.NewRequest(http.MethodPost, path, nil))
}

func (p *pageClient) upload(slot, name, content string) *httptest.ResponseRecorder {
	p.t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", name)
	require.NoError(p.t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(p.t, err)
	require.NoError(p.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/tailor/files/"+slot, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return p.do(req)
}

func (p *pageClient) view() PageView {
	p.t.Helper()
	resp := p.do(httptest.NewRequest(http.MethodGet, "/tailor/state", nil))
	require.Equal(p.t, http.StatusOK, resp.Code)
	var v PageView
	require.NoError(p.t, json.Unmarshal(resp.Body.Bytes(), &v))
	return v
}

func assertRedirect(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/tailor", resp.Header().Get("Location"))
}

func TestPageStartsSession(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 0)

	resp := p.do(httptest.NewRequest(http.MethodGet, "/tailor", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, p.cookie)
	assert.True(t, p.cookie.HttpOnly)
	assert.Contains(t, resp.Body.String(), "Upload your resume and job description to get tailored suggestions.")
	assert.Contains(t, resp.Body.String(), "PDF, DOCX up to 5MB")
}

func TestFullFlowThroughForms(t *testing.T) {
	client := &fakeClient{results: []error{resumeclient.ErrTransport}}
	p := newPageClient(t, client, 0)

	assertRedirect(t, p.upload("resume", "resume.pdf", "resume text"))
	assert.Equal(t, "need_files", p.view().State)

	assertRedirect(t, p.upload("job-description", "jd.txt", "job text"))
	v := p.view()
	assert.Equal(t, "ready_to_analyze", v.State)
	assert.Equal(t, "0.01 KB", v.Resume.Size)

	assertRedirect(t, p.post("/tailor/analyze"))
	v = p.view()
	assert.Equal(t, "failed", v.State)
	assert.Equal(t, FailureMessage, v.Error)

	page := p.do(httptest.NewRequest(http.MethodGet, "/tailor", nil))
	assert.Contains(t, page.Body.String(), FailureMessage)

	assertRedirect(t, p.post("/tailor/retry"))
	v = p.view()
	assert.Equal(t, "success", v.State)
	require.NotNil(t, v.Result)
	assert.Equal(t, "72%", v.Result.ScoreLabel)
	assert.Equal(t, ScoreSuccess, v.Result.ScoreColor)
	assert.Equal(t, []string{"React.js"}, v.Result.KeywordsToAdd)

	page = p.do(httptest.NewRequest(http.MethodGet, "/tailor", nil))
	assert.Contains(t, page.Body.String(), NoKeywordsToRemoveMessage)
	assert.Contains(t, page.Body.String(), "React.js")

	assertRedirect(t, p.post("/tailor/reset"))
	v = p.view()
	assert.Equal(t, "need_files", v.State)
	assert.Nil(t, v.Resume)
	assert.Nil(t, v.JobDescription)
	assert.Equal(t, 2, client.callCount())
}

func TestPageShowsUnavailableSkillSections(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 0)
	p.upload("resume", "resume.pdf", "resume text")
	p.upload("job-description", "jd.txt", "job text")
	assertRedirect(t, p.post("/tailor/analyze"))

	v := p.view()
	require.Equal(t, "success", v.State)
	require.NotNil(t, v.Result.TechnicalSkills)
	assert.False(t, v.Result.TechnicalSkills.Available)
	assert.Equal(t, SkillsUnavailableMessage, v.Result.SoftSkills.Unavailable)

	body := p.do(httptest.NewRequest(http.MethodGet, "/tailor", nil)).Body.String()
	assert.Contains(t, body, "<h3>Technical Skills</h3>")
	assert.Contains(t, body, "<h3>Soft Skills</h3>")
	assert.Equal(t, 2, strings.Count(body, SkillsUnavailableMessage))
	assert.NotContains(t, body, "In job description:")
}

func TestRemoveFileReturnsToNeedFiles(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 0)
	p.upload("resume", "resume.pdf", "r")
	p.upload("job-description", "jd.txt", "j")

	assertRedirect(t, p.post("/tailor/files/resume/delete"))
	v := p.view()
	assert.Equal(t, "need_files", v.State)
	assert.Nil(t, v.Resume)
	require.NotNil(t, v.JobDescription)
}

func TestAnalyzeWithoutFilesIsRefused(t *testing.T) {
	client := &fakeClient{}
	p := newPageClient(t, client, 0)

	assertRedirect(t, p.post("/tailor/analyze"))
	assert.Equal(t, "need_files", p.view().State)
	assert.Zero(t, client.callCount())
}

func TestUnknownSlotIsBadRequest(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 0)

	resp := p.upload("cover-letter", "letter.pdf", "x")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = p.post("/tailor/files/cv/delete")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 0)

	req := httptest.NewRequest(http.MethodPost, "/tailor/files/resume", strings.NewReader(""))
	resp := p.do(req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUploadTooLarge(t *testing.T) {
	p := newPageClient(t, &fakeClient{}, 512)

	resp := p.upload("resume", "resume.txt", strings.Repeat("x", 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestSessionsDoNotLeakBetweenVisitors(t *testing.T) {
	client := &fakeClient{}
	first := newPageClient(t, client, 0)
	first.upload("resume", "resume.pdf", "r")

	second := &pageClient{t: t, router: first.router}
	assert.Nil(t, second.view().Resume)
	assert.NotNil(t, first.view().Resume)
}

func TestCookielessVisitsStayWithinSessionCap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewSessionStore(&fakeClient{}, time.Minute, WithMaxSessions(5))
	r := gin.New()
	NewHandler(store, 0, false).RegisterRoutes(&r.RouterGroup)

	for i := 0; i < 50; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/tailor", nil))
		require.Equal(t, http.StatusOK, resp.Code)
	}
	assert.Equal(t, 5, store.Len())
}
