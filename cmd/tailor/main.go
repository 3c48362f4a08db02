package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"job-assistant/internal/resumeclient"
	"job-assistant/internal/shared/config"
	"job-assistant/internal/shared/telemetry"
	"job-assistant/internal/tailoring"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to resume file (pdf, docx or text)")
	jdPath := flag.String("jd", "", "Path to job description file")
	apiURL := flag.String("api", cfg.AnalysisAPIURL, "Analysis API base URL")
	asJSON := flag.Bool("json", false, "Print the raw analysis result as JSON")
	verbose := flag.Bool("v", false, "Log requests to stderr")
	flag.Parse()

	if !*verbose {
		telemetry.SetOutput(io.Discard)
	} else {
		telemetry.SetOutput(os.Stderr)
	}

	if strings.TrimSpace(*resumePath) == "" || strings.TrimSpace(*jdPath) == "" {
		flag.Usage()
		exitErr("both -resume and -jd are required")
	}

	client, err := resumeclient.NewClient(*apiURL, cfg.AnalysisTimeout)
	if err != nil {
		exitErr(err.Error())
	}

	panel := tailoring.NewPanel(client, nil)
	coord := tailoring.NewCoordinator(panel.SetPair)
	if err := loadFiles(coord, *resumePath, *jdPath); err != nil {
		exitErr(err.Error())
	}

	if err := panel.Analyze(context.Background()); err != nil {
		if *verbose {
			fmt.Fprintf(os.Stderr, "cause: %v\n", err)
		}
		exitErr(tailoring.FailureMessage)
	}

	snap := panel.Snapshot()
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap.Result); err != nil {
			exitErr(fmt.Sprintf("encode result: %v", err))
		}
		return
	}
	if err := tailoring.RenderText(os.Stdout, tailoring.BuildResultView(*snap.Result)); err != nil {
		exitErr(fmt.Sprintf("write result: %v", err))
	}
}

// loadFiles reads the resume, then the job description, into their slots.
func loadFiles(coord *tailoring.Coordinator, resumePath, jdPath string) error {
	inputs := []struct {
		slot tailoring.Slot
		path string
	}{
		{tailoring.SlotResume, resumePath},
		{tailoring.SlotJobDescription, jdPath},
	}
	for _, in := range inputs {
		data, err := os.ReadFile(in.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", in.slot, err)
		}
		if err := coord.SetFile(in.slot, tailoring.NewFile(filepath.Base(in.path), data)); err != nil {
			return err
		}
	}
	return nil
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
