package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCountersAppearInMetrics(t *testing.T) {
	before := GetMetrics()
	IncrGenerationRun()
	IncrGenerationRun()
	AddFilesCleaned(3)
	after := GetMetrics()

	if got := after["generation_runs"] - before["generation_runs"]; got != 2 {
		t.Errorf("generation_runs delta = %d, want 2", got)
	}
	if got := after["files_cleaned"] - before["files_cleaned"]; got != 3 {
		t.Errorf("files_cleaned delta = %d, want 3", got)
	}
}

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(counters)+2 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(counters)+2, out)
	}
	if !strings.HasPrefix(lines[0], "llm_calls ") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "cache_misses ") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestTrackOperationReturnsError(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "test", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}
