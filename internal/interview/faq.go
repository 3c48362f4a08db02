// Package interview answers the canned interview-preparation questions.
package interview

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed faq.yaml
var faqYAML []byte

var ErrEmptyQuestion = errors.New("question is required")

type faqEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type faqFile struct {
	Greeting string     `yaml:"greeting"`
	Default  string     `yaml:"default"`
	Entries  []faqEntry `yaml:"entries"`
}

// FAQ looks up answers by question text.
type FAQ struct {
	greeting  string
	fallback  string
	questions []string
	exact     map[string]string
	loose     map[string]string
}

// DefaultFAQ returns the embedded question set.
func DefaultFAQ() *FAQ {
	f, err := ParseFAQ(faqYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded faq: %v", err))
	}
	return f
}

// ParseFAQ reads a question set from YAML.
func ParseFAQ(data []byte) (*FAQ, error) {
	var raw faqFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse faq: %w", err)
	}
	if strings.TrimSpace(raw.Default) == "" {
		return nil, errors.New("parse faq: default answer is required")
	}
	f := &FAQ{
		greeting: raw.Greeting,
		fallback: raw.Default,
		exact:    make(map[string]string, len(raw.Entries)),
		loose:    make(map[string]string, len(raw.Entries)),
	}
	for _, e := range raw.Entries {
		if strings.TrimSpace(e.Question) == "" || strings.TrimSpace(e.Answer) == "" {
			return nil, fmt.Errorf("parse faq: incomplete entry %q", e.Question)
		}
		f.questions = append(f.questions, e.Question)
		f.exact[e.Question] = e.Answer
		f.loose[looseKey(e.Question)] = e.Answer
	}
	return f, nil
}

// Greeting is the assistant's opening message.
func (f *FAQ) Greeting() string { return f.greeting }

// Questions lists the quick replies in display order.
func (f *FAQ) Questions() []string {
	return append([]string(nil), f.questions...)
}

// Answer returns the canned answer for question, falling back to the default
// answer. matched reports whether a canned answer was found.
func (f *FAQ) Answer(question string) (answer string, matched bool, err error) {
	if strings.TrimSpace(question) == "" {
		return "", false, ErrEmptyQuestion
	}
	if a, ok := f.exact[question]; ok {
		return a, true, nil
	}
	if a, ok := f.loose[looseKey(question)]; ok {
		return a, true, nil
	}
	return f.fallback, false, nil
}

// looseKey lowercases and keeps only letters and digits, one space between words.
func looseKey(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}
