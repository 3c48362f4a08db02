package health

import "time"

// Check reports whether one dependency is usable.
type Check func() bool

// Service encapsulates health-related checks.
type Service struct {
	component string
	started   time.Time
	checks    map[string]Check
	now       func() time.Time
}

// NewService constructs a health service for the named component.
func NewService(component string, checks map[string]Check) *Service {
	return &Service{component: component, started: time.Now(), checks: checks, now: time.Now}
}

// Status returns the health payload. Failed checks are listed but do not
// flip ok: every dependency has an in-process fallback.
func (s *Service) Status() map[string]any {
	deps := make(map[string]bool, len(s.checks))
	for name, check := range s.checks {
		deps[name] = check()
	}
	return map[string]any{
		"ok":            true,
		"component":     s.component,
		"uptimeSeconds": int64(s.now().Sub(s.started).Seconds()),
		"dependencies":  deps,
	}
}
