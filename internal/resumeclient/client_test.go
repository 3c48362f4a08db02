package resumeclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assistant/resume/contract"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api/resume", time.Second)
	require.NoError(t, err)
	return c
}

func TestAnalyzePostsBothFiles(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/resume/analyze/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File, 2)

		for field, want := range map[string]struct{ name, body string }{
			"resume_file":   {"cv.pdf", "resume bytes"},
			"job_desc_file": {"jd.docx", "job bytes"},
		} {
			file, header, err := r.FormFile(field)
			require.NoError(t, err)
			data, _ := io.ReadAll(file)
			file.Close()
			assert.Equal(t, want.name, header.Filename)
			assert.Equal(t, want.body, string(data))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"keywordsToAdd":["kubernetes"],"keywordsToRemove":[],"contentSuggestions":["Use numbers."],"matchScore":72,"sentimentAnalysis":{"sentiment":"positive"}}`)
	})

	result, err := c.Analyze(context.Background(),
		Document{Name: "cv.pdf", Data: []byte("resume bytes")},
		Document{Name: "jd.docx", Data: []byte("job bytes")},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes"}, result.KeywordsToAdd)
	assert.Equal(t, 72, result.MatchScore)
	assert.Equal(t, contract.SentimentPositive, result.SentimentAnalysis.Sentiment)
	assert.Nil(t, result.TechnicalSkillsMatch)
}

func TestAnalyzeFailuresMapToTransportError(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"bad request": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Both resume and job description files are required."}`)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>oops</html>")
		},
		"not an object": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[1,2,3]`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			c := newServer(t, handler)
			_, err := c.Analyze(context.Background(), Document{Name: "a.txt"}, Document{Name: "b.txt"})
			assert.ErrorIs(t, err, ErrTransport)
		})
	}
}

func TestAnalyzeUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second)
	require.NoError(t, err)
	_, err = c.Analyze(context.Background(), Document{Name: "a.txt"}, Document{Name: "b.txt"})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestAnalyzeMalformedFieldsDegrade(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"keywordsToAdd":"nope","matchScore":"abc","technicalSkillsMatch":{"inJob":["go"]},"sentimentAnalysis":{"sentiment":"ecstatic"}}`)
	})

	result, err := c.Analyze(context.Background(), Document{Name: "a.txt"}, Document{Name: "b.txt"})
	require.NoError(t, err)
	assert.Empty(t, result.KeywordsToAdd)
	assert.Equal(t, 0, result.MatchScore)
	assert.Nil(t, result.TechnicalSkillsMatch)
	assert.Equal(t, contract.SentimentNeutral, result.SentimentAnalysis.Sentiment)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ", time.Second)
	assert.Error(t, err)
}
