package tailoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-assistant/resume/contract"
)

func TestScoreColorIsStrictlyAboveSeventy(t *testing.T) {
	cases := map[int]string{0: ScoreWarning, 70: ScoreWarning, 71: ScoreSuccess, 72: ScoreSuccess, 100: ScoreSuccess}
	for score, want := range cases {
		assert.Equal(t, want, ScoreColor(score), "score %d", score)
	}
}

func TestSkillsMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"React", "react.js", true},
		{"react.js", "React", true},
		{"Go", "go", true},
		{"kubernetes", "docker", false},
		{"", "go", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SkillsMatch(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestResultViewEmptyKeywordMessages(t *testing.T) {
	v := BuildResultView(contract.AnalysisResult{MatchScore: 72})

	assert.Empty(t, v.KeywordsToAdd)
	assert.Equal(t, NoKeywordsToAddMessage, v.NoAddMessage)
	assert.Equal(t, NoKeywordsToRemoveMessage, v.NoRemoveMessage)
	assert.Equal(t, "72%", v.ScoreLabel)
	assert.Equal(t, ScoreSuccess, v.ScoreColor)
}

func TestResultViewWithKeywordsHasNoEmptyMessage(t *testing.T) {
	v := BuildResultView(contract.AnalysisResult{KeywordsToAdd: []string{"React.js"}, KeywordsToRemove: []string{"jquery"}})
	assert.Equal(t, []string{"React.js"}, v.KeywordsToAdd)
	assert.Empty(t, v.NoAddMessage)
	assert.Empty(t, v.NoRemoveMessage)
}

func TestResultViewSentimentDefaultsToNeutral(t *testing.T) {
	var r contract.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(`{"matchScore":50}`), &r))

	v := BuildResultView(r)
	assert.Equal(t, contract.SentimentNeutral, v.Sentiment.Value)
	assert.Equal(t, "Neutral", v.Sentiment.Label)

	v = BuildResultView(contract.AnalysisResult{SentimentAnalysis: contract.SentimentAnalysis{Sentiment: "NEGATIVE"}})
	assert.Equal(t, "Negative", v.Sentiment.Label)
}

func TestResultViewSkillSections(t *testing.T) {
	var r contract.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"technicalSkillsMatch": {"inJob": ["react.js", "kubernetes"], "inResume": ["React"], "missing": ["kubernetes"]},
		"softSkillsMatch": {"inJob": ["teamwork"]}
	}`), &r))

	v := BuildResultView(r)
	require.NotNil(t, v.TechnicalSkills)
	assert.True(t, v.TechnicalSkills.Available)
	assert.True(t, v.SoftSkills.Available)

	assert.Equal(t, []SkillView{{Name: "react.js", Matched: true}, {Name: "kubernetes"}}, v.TechnicalSkills.InJob)
	assert.Equal(t, []SkillView{{Name: "React", Matched: true}}, v.TechnicalSkills.InResume)
	assert.Equal(t, []string{"kubernetes"}, v.TechnicalSkills.Missing)
}

func TestResultViewMissingSkillMatchesAreUnavailable(t *testing.T) {
	v := BuildResultView(contract.AnalysisResult{MatchScore: 50})

	for _, s := range []*SkillSection{v.TechnicalSkills, v.SoftSkills} {
		require.NotNil(t, s)
		assert.False(t, s.Available)
		assert.Equal(t, SkillsUnavailableMessage, s.Unavailable)
		assert.Empty(t, s.InJob)
	}
	assert.Equal(t, "Technical Skills", v.TechnicalSkills.Title)
	assert.Equal(t, "Soft Skills", v.SoftSkills.Title)
}

func TestBuildViewPerState(t *testing.T) {
	pair := completePair()
	result := contract.AnalysisResult{MatchScore: 40}

	cases := []struct {
		snap  Snapshot
		check func(t *testing.T, v PageView)
	}{
		{Snapshot{State: StateNeedFiles}, func(t *testing.T, v PageView) {
			assert.False(t, v.CanAnalyze)
			assert.Nil(t, v.Result)
		}},
		{Snapshot{State: StateReadyToAnalyze}, func(t *testing.T, v PageView) {
			assert.True(t, v.CanAnalyze)
		}},
		{Snapshot{State: StateLoading}, func(t *testing.T, v PageView) {
			assert.True(t, v.Loading)
			assert.False(t, v.CanAnalyze)
		}},
		{Snapshot{State: StateFailed, Message: FailureMessage}, func(t *testing.T, v PageView) {
			assert.True(t, v.CanRetry)
			assert.Equal(t, FailureMessage, v.Error)
		}},
		{Snapshot{State: StateSuccess, Result: &result}, func(t *testing.T, v PageView) {
			assert.True(t, v.CanReset)
			require.NotNil(t, v.Result)
			assert.Equal(t, ScoreWarning, v.Result.ScoreColor)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.snap.State.String(), func(t *testing.T) {
			v := BuildView(pair, tc.snap)
			assert.Equal(t, tc.snap.State.String(), v.State)
			assert.Equal(t, UploadHint, v.UploadHint)
			require.NotNil(t, v.Resume)
			assert.Equal(t, "resume.pdf", v.Resume.Name)
			tc.check(t, v)
		})
	}
}
