package tailoring

import (
	"context"
	"errors"
	"sync"

	"job-assistant/internal/resumeclient"
	"job-assistant/resume/contract"
)

// State is where a panel is in the analyze flow.
type State int

const (
	StateNeedFiles State = iota
	StateReadyToAnalyze
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNeedFiles:
		return "need_files"
	case StateReadyToAnalyze:
		return "ready_to_analyze"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FailureMessage is shown for every failed request, whatever the cause.
const FailureMessage = "Failed to analyze resume. Please try again."

var (
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("analysis already in progress")
	// ErrNotReady is returned when the action is not offered in the current state.
	ErrNotReady = errors.New("action not available in current state")
)

// AnalysisClient submits a resume and job description for analysis.
type AnalysisClient interface {
	Analyze(ctx context.Context, resume, jobDescription resumeclient.Document) (contract.AnalysisResult, error)
}

// Snapshot is a consistent read of a panel.
type Snapshot struct {
	State   State
	Result  *contract.AnalysisResult
	Message string
}

// Panel runs the analyze flow for one page session. The owner feeds it the
// current file pair through SetPair and supplies the handler that clears the
// pair on reset.
type Panel struct {
	mu      sync.Mutex
	client  AnalysisClient
	onReset func()
	pair    Pair
	// files the current result or failure belongs to
	sent    Pair
	state   State
	result  *contract.AnalysisResult
	message string
}

// NewPanel returns a panel in StateNeedFiles.
func NewPanel(client AnalysisClient, onReset func()) *Panel {
	return &Panel{client: client, onReset: onReset}
}

// SetPair records the owner's current pair. A pending request keeps the
// files it was started with; a result or failure survives only while the
// pair is still the one it was produced for.
func (p *Panel) SetPair(pair Pair) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pair = pair
	switch p.state {
	case StateLoading:
	case StateSuccess, StateFailed:
		if pair != p.sent {
			p.clearLocked()
		}
	default:
		p.clearLocked()
	}
}

// Analyze issues the first request for a complete pair.
func (p *Panel) Analyze(ctx context.Context) error {
	return p.run(ctx, StateReadyToAnalyze)
}

// Retry issues a new request with the same two files after a failure.
func (p *Panel) Retry(ctx context.Context) error {
	return p.run(ctx, StateFailed)
}

// Reset drops the result and asks the owner to clear the pair.
func (p *Panel) Reset() error {
	p.mu.Lock()
	if p.state != StateSuccess {
		p.mu.Unlock()
		return ErrNotReady
	}
	p.result = nil
	p.clearLocked()
	p.mu.Unlock()

	if p.onReset != nil {
		p.onReset()
	}
	return nil
}

// Snapshot returns the current state, result and message.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{State: p.state, Result: p.result, Message: p.message}
}

func (p *Panel) run(ctx context.Context, from State) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return ErrBusy
	}
	if p.state != from || !p.pair.Complete() {
		p.mu.Unlock()
		return ErrNotReady
	}
	pair := p.pair
	p.sent = pair
	p.state = StateLoading
	p.result = nil
	p.message = ""
	p.mu.Unlock()

	result, err := p.client.Analyze(ctx, pair.Resume.document(), pair.JobDescription.document())

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateFailed
		p.message = FailureMessage
		p.settleLocked()
		return err
	}
	result = result.Normalize()
	p.state = StateSuccess
	p.result = &result
	p.settleLocked()
	return nil
}

// settleLocked applies pair changes that arrived while a request was in flight.
func (p *Panel) settleLocked() {
	if p.pair != p.sent {
		p.clearLocked()
	}
}

func (p *Panel) clearLocked() {
	p.result = nil
	p.message = ""
	p.sent = Pair{}
	if p.pair.Complete() {
		p.state = StateReadyToAnalyze
	} else {
		p.state = StateNeedFiles
	}
}
