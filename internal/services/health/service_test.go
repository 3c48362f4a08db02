package health

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	svc := NewService("api", map[string]Check{
		"redis": func() bool { return false },
	})
	svc.now = func() time.Time { return svc.started.Add(90 * time.Second) }

	status := svc.Status()
	if status["ok"] != true || status["component"] != "api" {
		t.Fatalf("unexpected status %v", status)
	}
	if status["uptimeSeconds"] != int64(90) {
		t.Fatalf("unexpected uptime %v", status["uptimeSeconds"])
	}
	deps := status["dependencies"].(map[string]bool)
	if deps["redis"] {
		t.Fatalf("expected redis check to fail")
	}
}
