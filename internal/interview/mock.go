package interview

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed mock.yaml
var mockYAML []byte

var (
	ErrUnknownRole     = errors.New("unknown interview role")
	ErrEmptyTranscript = errors.New("transcript is required")
)

// Role is a practice track a session can pick.
type Role struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

type mockRole struct {
	Role      `yaml:",inline"`
	Keywords  []string `yaml:"keywords"`
	Questions []string `yaml:"questions"`
}

type mockFeedback struct {
	Clarity      int      `yaml:"clarity"`
	Confidence   int      `yaml:"confidence"`
	Relevance    int      `yaml:"relevance"`
	Pace         int      `yaml:"pace"`
	OverallScore int      `yaml:"overallScore"`
	FillerWords  []string `yaml:"fillerWords"`
	Suggestions  []string `yaml:"suggestions"`
}

type mockFile struct {
	Roles    []mockRole   `yaml:"roles"`
	Feedback mockFeedback `yaml:"feedback"`
}

// Question is one step of a role's question sequence.
type Question struct {
	Role     string `json:"role"`
	Index    int    `json:"index"`
	Next     int    `json:"next"`
	Total    int    `json:"total"`
	Question string `json:"question"`
}

// KeywordMatch counts how often a role keyword appeared in an answer.
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Metrics are the per-answer delivery scores, 0-100.
type Metrics struct {
	Clarity    int `json:"clarity"`
	Confidence int `json:"confidence"`
	Relevance  int `json:"relevance"`
	Pace       int `json:"pace"`
}

// Feedback is the review of one answer.
type Feedback struct {
	Role           string         `json:"role"`
	Metrics        Metrics        `json:"metrics"`
	FillerWords    int            `json:"fillerWords"`
	KeywordMatches []KeywordMatch `json:"keywordMatches"`
	Suggestions    []string       `json:"suggestions"`
	OverallScore   int            `json:"overallScore"`
	ScoreColor     string         `json:"scoreColor"`
}

// MockInterview serves canned practice questions and scores answers against
// the role's keywords.
type MockInterview struct {
	roles    []mockRole
	byID     map[string]*mockRole
	feedback mockFeedback
}

// DefaultMockInterview returns the embedded role set.
func DefaultMockInterview() *MockInterview {
	m, err := ParseMockInterview(mockYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded mock interview: %v", err))
	}
	return m
}

// ParseMockInterview reads roles, questions and feedback from YAML.
func ParseMockInterview(data []byte) (*MockInterview, error) {
	var raw mockFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mock interview: %w", err)
	}
	if len(raw.Roles) == 0 {
		return nil, errors.New("parse mock interview: at least one role is required")
	}
	m := &MockInterview{roles: raw.Roles, byID: make(map[string]*mockRole, len(raw.Roles)), feedback: raw.Feedback}
	for i := range m.roles {
		r := &m.roles[i]
		if r.ID == "" || len(r.Questions) == 0 {
			return nil, fmt.Errorf("parse mock interview: role %q has no questions", r.ID)
		}
		if _, dup := m.byID[r.ID]; dup {
			return nil, fmt.Errorf("parse mock interview: duplicate role %q", r.ID)
		}
		m.byID[r.ID] = r
	}
	return m, nil
}

// Roles lists the roles in display order.
func (m *MockInterview) Roles() []Role {
	out := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r.Role)
	}
	return out
}

// Question returns the question at index for role. The sequence wraps, so a
// caller can keep asking for Next forever.
func (m *MockInterview) Question(role string, index int) (Question, error) {
	r, ok := m.byID[role]
	if !ok {
		return Question{}, ErrUnknownRole
	}
	total := len(r.Questions)
	index %= total
	if index < 0 {
		index += total
	}
	return Question{
		Role:     role,
		Index:    index,
		Next:     (index + 1) % total,
		Total:    total,
		Question: r.Questions[index],
	}, nil
}

// Review scores a transcript. Delivery metrics are fixed; filler words and
// keyword matches are counted from the transcript.
func (m *MockInterview) Review(role, transcript string) (Feedback, error) {
	r, ok := m.byID[role]
	if !ok {
		return Feedback{}, ErrUnknownRole
	}
	words := strings.Fields(looseKey(transcript))
	if len(words) == 0 {
		return Feedback{}, ErrEmptyTranscript
	}
	fb := Feedback{
		Role: role,
		Metrics: Metrics{
			Clarity:    m.feedback.Clarity,
			Confidence: m.feedback.Confidence,
			Relevance:  m.feedback.Relevance,
			Pace:       m.feedback.Pace,
		},
		KeywordMatches: []KeywordMatch{},
		Suggestions:    append([]string(nil), m.feedback.Suggestions...),
		OverallScore:   m.feedback.OverallScore,
		ScoreColor:     "warning",
	}
	if fb.OverallScore > 70 {
		fb.ScoreColor = "success"
	}
	for _, f := range m.feedback.FillerWords {
		fb.FillerWords += countPhrase(words, f)
	}
	for _, k := range r.Keywords {
		if n := countPhrase(words, k); n > 0 {
			fb.KeywordMatches = append(fb.KeywordMatches, KeywordMatch{Keyword: k, Count: n})
		}
	}
	return fb, nil
}

// countPhrase counts occurrences of phrase as whole words in words.
func countPhrase(words []string, phrase string) int {
	p := strings.Fields(looseKey(phrase))
	if len(p) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(p) <= len(words); i++ {
		if slices.Equal(words[i:i+len(p)], p) {
			n++
		}
	}
	return n
}
