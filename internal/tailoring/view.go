package tailoring

import (
	"strconv"
	"strings"

	"job-assistant/resume/contract"
)

const (
	NoKeywordsToAddMessage    = "No missing keywords detected."
	NoKeywordsToRemoveMessage = "No keywords to remove."
	SkillsUnavailableMessage  = "Skill comparison not available."

	ScoreSuccess = "success"
	ScoreWarning = "warning"

	successThreshold = 70
)

// FileView describes one occupied upload slot.
type FileView struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// SkillView is one skill with its fuzzy-match flag.
type SkillView struct {
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}

// SkillSection is one skill comparison. Unavailable sections keep their
// title and carry a fixed message instead of chips.
type SkillSection struct {
	Title       string      `json:"title"`
	Available   bool        `json:"available"`
	Unavailable string      `json:"unavailableMessage,omitempty"`
	InJob       []SkillView `json:"inJob"`
	InResume    []SkillView `json:"inResume"`
	Missing     []string    `json:"missing"`
}

// SentimentView is the sentiment chip.
type SentimentView struct {
	Value contract.Sentiment `json:"value"`
	Label string             `json:"label"`
	Tone  string             `json:"tone"`
}

// ResultView is a successful analysis prepared for display.
type ResultView struct {
	Score              int           `json:"score"`
	ScoreLabel         string        `json:"scoreLabel"`
	ScoreColor         string        `json:"scoreColor"`
	KeywordsToAdd      []string      `json:"keywordsToAdd"`
	KeywordsToRemove   []string      `json:"keywordsToRemove"`
	NoAddMessage       string        `json:"noAddMessage,omitempty"`
	NoRemoveMessage    string        `json:"noRemoveMessage,omitempty"`
	FormatSuggestions  []string      `json:"formatSuggestions,omitempty"`
	ContentSuggestions []string      `json:"contentSuggestions"`
	TechnicalSkills    *SkillSection `json:"technicalSkills"`
	SoftSkills         *SkillSection `json:"softSkills"`
	Sentiment          SentimentView `json:"sentiment"`
}

// PageView is everything the tailoring page shows.
type PageView struct {
	State          string      `json:"state"`
	UploadHint     string      `json:"uploadHint"`
	Resume         *FileView   `json:"resume,omitempty"`
	JobDescription *FileView   `json:"jobDescription,omitempty"`
	CanAnalyze     bool        `json:"canAnalyze"`
	Loading        bool        `json:"loading"`
	CanRetry       bool        `json:"canRetry"`
	CanReset       bool        `json:"canReset"`
	Error          string      `json:"error,omitempty"`
	Result         *ResultView `json:"result,omitempty"`
}

// BuildView renders a pair and panel snapshot.
func BuildView(pair Pair, snap Snapshot) PageView {
	view := PageView{
		State:          snap.State.String(),
		UploadHint:     UploadHint,
		Resume:         fileView(pair.Resume),
		JobDescription: fileView(pair.JobDescription),
		CanAnalyze:     snap.State == StateReadyToAnalyze,
		Loading:        snap.State == StateLoading,
		CanRetry:       snap.State == StateFailed,
		CanReset:       snap.State == StateSuccess,
	}
	switch snap.State {
	case StateFailed:
		view.Error = snap.Message
	case StateSuccess:
		if snap.Result != nil {
			view.Result = BuildResultView(*snap.Result)
		}
	}
	return view
}

// BuildResultView applies the display rules to an analysis result.
func BuildResultView(r contract.AnalysisResult) *ResultView {
	r = r.Normalize()
	v := &ResultView{
		Score:              r.MatchScore,
		ScoreLabel:         strconv.Itoa(r.MatchScore) + "%",
		ScoreColor:         ScoreColor(r.MatchScore),
		KeywordsToAdd:      r.KeywordsToAdd,
		KeywordsToRemove:   r.KeywordsToRemove,
		FormatSuggestions:  r.FormatSuggestions,
		ContentSuggestions: r.ContentSuggestions,
		TechnicalSkills:    skillSection("Technical Skills", r.TechnicalSkillsMatch),
		SoftSkills:         skillSection("Soft Skills", r.SoftSkillsMatch),
		Sentiment:          sentimentView(r.SentimentAnalysis.Sentiment),
	}
	if len(v.KeywordsToAdd) == 0 {
		v.NoAddMessage = NoKeywordsToAddMessage
	}
	if len(v.KeywordsToRemove) == 0 {
		v.NoRemoveMessage = NoKeywordsToRemoveMessage
	}
	return v
}

// ScoreColor is "success" strictly above 70 and "warning" otherwise.
func ScoreColor(score int) string {
	if score > successThreshold {
		return ScoreSuccess
	}
	return ScoreWarning
}

// SkillsMatch compares two skill names case-insensitively: equal, or either
// contains the other.
func SkillsMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return a == b
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func matchedIn(skill string, others []string) bool {
	for _, o := range others {
		if SkillsMatch(skill, o) {
			return true
		}
	}
	return false
}

func skillSection(title string, m *contract.SkillMatch) *SkillSection {
	if m == nil {
		return &SkillSection{
			Title:       title,
			Unavailable: SkillsUnavailableMessage,
			InJob:       []SkillView{},
			InResume:    []SkillView{},
			Missing:     []string{},
		}
	}
	s := &SkillSection{
		Title:     title,
		Available: true,
		InJob:     make([]SkillView, 0, len(m.InJob)),
		InResume:  make([]SkillView, 0, len(m.InResume)),
		Missing:   m.Missing,
	}
	for _, skill := range m.InJob {
		s.InJob = append(s.InJob, SkillView{Name: skill, Matched: matchedIn(skill, m.InResume)})
	}
	for _, skill := range m.InResume {
		s.InResume = append(s.InResume, SkillView{Name: skill, Matched: matchedIn(skill, m.InJob)})
	}
	if s.Missing == nil {
		s.Missing = []string{}
	}
	return s
}

func sentimentView(s contract.Sentiment) SentimentView {
	switch contract.ParseSentiment(string(s)) {
	case contract.SentimentPositive:
		return SentimentView{Value: contract.SentimentPositive, Label: "Positive", Tone: "success"}
	case contract.SentimentNegative:
		return SentimentView{Value: contract.SentimentNegative, Label: "Negative", Tone: "error"}
	default:
		return SentimentView{Value: contract.SentimentNeutral, Label: "Neutral", Tone: "default"}
	}
}

func fileView(f *File) *FileView {
	if f == nil {
		return nil
	}
	return &FileView{Name: f.Name, Size: f.DisplaySize()}
}
