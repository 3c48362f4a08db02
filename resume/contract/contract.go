// Package contract defines the analysis result exchanged between the
// analysis service and its clients.
package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotObject is returned when a result body is valid JSON but not an object.
var ErrNotObject = errors.New("analysis result is not a json object")

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps any unrecognised value to neutral.
func ParseSentiment(raw string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(raw))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

type SentimentAnalysis struct {
	Sentiment Sentiment `json:"sentiment"`
}

// SkillMatch compares one category of skills between the two documents.
type SkillMatch struct {
	InJob    []string `json:"inJob"`
	InResume []string `json:"inResume"`
	Missing  []string `json:"missing"`
}

// AnalysisResult is the outcome of one analysis request.
// A nil skill match means the category is not available.
type AnalysisResult struct {
	KeywordsToAdd        []string          `json:"keywordsToAdd"`
	KeywordsToRemove     []string          `json:"keywordsToRemove"`
	FormatSuggestions    []string          `json:"formatSuggestions,omitempty"`
	ContentSuggestions   []string          `json:"contentSuggestions"`
	MatchScore           int               `json:"matchScore"`
	TechnicalSkillsMatch *SkillMatch       `json:"technicalSkillsMatch,omitempty"`
	SoftSkillsMatch      *SkillMatch       `json:"softSkillsMatch,omitempty"`
	SentimentAnalysis    SentimentAnalysis `json:"sentimentAnalysis"`
}

// Normalize replaces nil lists with empty ones so they encode as [] and
// clamps the score to 0..100.
func (r AnalysisResult) Normalize() AnalysisResult {
	r.KeywordsToAdd = nonNil(r.KeywordsToAdd)
	r.KeywordsToRemove = nonNil(r.KeywordsToRemove)
	r.ContentSuggestions = nonNil(r.ContentSuggestions)
	r.MatchScore = clampScore(r.MatchScore)
	for _, m := range []*SkillMatch{r.TechnicalSkillsMatch, r.SoftSkillsMatch} {
		if m == nil {
			continue
		}
		m.InJob = nonNil(m.InJob)
		m.InResume = nonNil(m.InResume)
		m.Missing = nonNil(m.Missing)
	}
	r.SentimentAnalysis.Sentiment = ParseSentiment(string(r.SentimentAnalysis.Sentiment))
	return r
}

// UnmarshalJSON decodes field by field so that a malformed optional field
// degrades to its empty value instead of failing the whole result.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		if !json.Valid(data) {
			return errors.New("analysis result is not valid json")
		}
		return ErrNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = AnalysisResult{
		KeywordsToAdd:        decodeStrings(fields["keywordsToAdd"]),
		KeywordsToRemove:     decodeStrings(fields["keywordsToRemove"]),
		FormatSuggestions:    decodeStrings(fields["formatSuggestions"]),
		ContentSuggestions:   decodeStrings(fields["contentSuggestions"]),
		MatchScore:           decodeScore(fields["matchScore"]),
		TechnicalSkillsMatch: decodeSkillMatch(fields["technicalSkillsMatch"]),
		SoftSkillsMatch:      decodeSkillMatch(fields["softSkillsMatch"]),
		SentimentAnalysis:    SentimentAnalysis{Sentiment: decodeSentiment(fields["sentimentAnalysis"])},
	}
	return nil
}

// decodeStrings keeps the string entries of an array and drops everything else.
func decodeStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodeScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return clampScore(int(math.Round(f)))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64); err == nil {
			return clampScore(int(math.Round(f)))
		}
	}
	return 0
}

// decodeSkillMatch yields a value only when both inResume and inJob are arrays.
func decodeSkillMatch(raw json.RawMessage) *SkillMatch {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}
	if !isArray(fields["inResume"]) || !isArray(fields["inJob"]) {
		return nil
	}
	missing := decodeStrings(fields["missing"])
	if missing == nil {
		missing = []string{}
	}
	return &SkillMatch{
		InJob:    decodeStrings(fields["inJob"]),
		InResume: decodeStrings(fields["inResume"]),
		Missing:  missing,
	}
}

func decodeSentiment(raw json.RawMessage) Sentiment {
	if len(raw) == 0 {
		return SentimentNeutral
	}
	var obj struct {
		Sentiment json.RawMessage `json:"sentiment"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj.Sentiment) > 0 {
		raw = obj.Sentiment
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return SentimentNeutral
	}
	return ParseSentiment(s)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
