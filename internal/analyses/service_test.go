package analyses

import (
	"context"
	"errors"
	"testing"
)

func TestServiceRejectsEmptyUploads(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Analyze(context.Background(), Upload{Name: "resume.txt"}, Upload{Name: "job.txt", Data: []byte(testJob)})
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestServiceWithoutCache(t *testing.T) {
	svc := NewService(nil, nil)
	resume := Upload{Name: "resume.txt", Data: []byte(testResume)}
	job := Upload{Name: "job.txt", Data: []byte(testJob)}

	for i := 0; i < 2; i++ {
		out, err := svc.Analyze(context.Background(), resume, job)
		if err != nil {
			t.Fatalf("analyze: %v", err)
		}
		if out.Cached || out.Degraded {
			t.Fatalf("unexpected outcome flags %+v", out)
		}
	}
}

func TestServiceReportsBothExtractionFailuresInOrder(t *testing.T) {
	svc := NewService(nil, nil)
	out, err := svc.Analyze(context.Background(),
		Upload{Name: "resume.pdf", Data: []byte("%PDF-broken")},
		Upload{Name: "job.txt", Data: []byte{0xff, 0xfe, 0xfd}},
	)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !out.Degraded {
		t.Fatalf("expected degraded outcome")
	}
	want := []string{
		"Error: Could not extract text from the provided PDF file.",
		"Error: Could not extract text from the provided file.",
	}
	got := out.Result.ContentSuggestions
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected messages %v", got)
	}
}

func TestServiceCanceledContext(t *testing.T) {
	svc := NewService(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analyze(ctx,
		Upload{Name: "resume.txt", Data: []byte(testResume)},
		Upload{Name: "job.txt", Data: []byte(testJob)},
	)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
