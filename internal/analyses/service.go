package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"job-assistant/internal/analyses/matching"
	"job-assistant/internal/extract"
	"job-assistant/internal/shared/cache"
	"job-assistant/internal/shared/metrics"
	"job-assistant/internal/shared/telemetry"
	"job-assistant/internal/shared/util"
	"job-assistant/resume/contract"
)

// Service contains business logic for analyses.
type Service struct {
	Analyzer *matching.Analyzer
	Cache    *cache.Cache
	now      func() time.Time
}

// NewService constructs a Service. A nil cache disables caching.
func NewService(analyzer *matching.Analyzer, c *cache.Cache) *Service {
	if analyzer == nil {
		analyzer = matching.NewAnalyzer(nil)
	}
	return &Service{Analyzer: analyzer, Cache: c, now: time.Now}
}

// Analyze reads both documents and compares them. Unreadable documents are
// not an error: the outcome is degraded and carries the extraction messages.
func (s *Service) Analyze(ctx context.Context, resume, job Upload) (Outcome, error) {
	if len(resume.Data) == 0 || len(job.Data) == 0 {
		return Outcome{}, ErrMissingFile
	}
	metrics.IncAnalysisStarted()
	start := s.now()

	key := "analysis:" + util.PairKey(resume.Data, job.Data)
	if result, ok := s.cached(ctx, key); ok {
		metrics.IncAnalysisCacheHit()
		metrics.IncAnalysisCompleted()
		metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
		return Outcome{Result: result, Cached: true}, nil
	}

	texts, messages, err := s.extractBoth(ctx, resume, job)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Outcome{}, err
	}
	if len(messages) > 0 {
		metrics.IncAnalysisFailed()
		metrics.IncAnalysisDegraded()
		telemetry.Warn("analysis.extraction_failed", map[string]any{
			"resume_file": resume.Name,
			"job_file":    job.Name,
			"messages":    messages,
		})
		return Outcome{Result: matching.ErrorResult(messages...), Degraded: true}, nil
	}

	result := s.Analyzer.Analyze(texts[0], texts[1])
	s.store(ctx, key, result)

	elapsed := metrics.SinceMillis(start)
	metrics.ObserveAnalysisDurationMs(elapsed)
	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"match_score":  result.MatchScore,
		"keywords_add": len(result.KeywordsToAdd),
		"duration_ms":  elapsed,
	})
	return Outcome{Result: result}, nil
}

// Sentiment classifies free text.
func (s *Service) Sentiment(text string) contract.Sentiment {
	return s.Analyzer.Sentiment(text)
}

// extractBoth reads both uploads concurrently. User-facing extraction
// failures come back as messages in resume, job order.
func (s *Service) extractBoth(ctx context.Context, resume, job Upload) ([2]string, []string, error) {
	var (
		texts  [2]string
		failed [2]string
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range []Upload{resume, job} {
		g.Go(func() error {
			text, err := extract.TextFromBytes(gctx, up.Data, up.Name)
			if err != nil {
				var xerr *extract.Error
				if errors.As(err, &xerr) {
					failed[i] = xerr.Message()
					return nil
				}
				return fmt.Errorf("extract %s: %w", up.Name, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return texts, nil, err
	}

	var messages []string
	for _, msg := range failed {
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return texts, messages, nil
}

func (s *Service) cached(ctx context.Context, key string) (contract.AnalysisResult, bool) {
	data, ok := s.Cache.Get(ctx, key)
	if !ok {
		return contract.AnalysisResult{}, false
	}
	var result contract.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		telemetry.Warn("analysis.cache_decode_failed", map[string]any{
			"error": fmt.Errorf("%w: %v", ErrCacheDecoded, err).Error(),
		})
		return contract.AnalysisResult{}, false
	}
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result contract.AnalysisResult) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		telemetry.Error("analysis.cache_encode_failed", map[string]any{"error": err.Error()})
		return
	}
	s.Cache.Set(ctx, key, data)
}
