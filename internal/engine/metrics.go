package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// slowOperation is the duration after which TrackOperation logs a warning.
const slowOperation = 30 * time.Second

type counter struct {
	name string
	v    atomic.Int64
}

var (
	llmCalls           = &counter{name: "llm_calls"}
	llmErrors          = &counter{name: "llm_errors"}
	generationRuns     = &counter{name: "generation_runs"}
	generationErrors   = &counter{name: "generation_errors"}
	metadataRequests   = &counter{name: "metadata_requests"}
	metadataErrors     = &counter{name: "metadata_errors"}
	transcriptRequests = &counter{name: "transcript_requests"}
	transcriptErrors   = &counter{name: "transcript_errors"}
	twitterRequests    = &counter{name: "twitter_requests"}
	filesCleaned       = &counter{name: "files_cleaned"}

	// counters is the exposition order.
	counters = []*counter{
		llmCalls, llmErrors,
		generationRuns, generationErrors,
		metadataRequests, metadataErrors,
		transcriptRequests, transcriptErrors,
		twitterRequests, filesCleaned,
	}
)

// GetMetrics returns a snapshot of all counters including cache stats.
func GetMetrics() map[string]int64 {
	m := make(map[string]int64, len(counters)+2)
	for _, c := range counters {
		m[c.name] = c.v.Load()
	}
	m["cache_hits"], m["cache_misses"] = CacheStats()
	return m
}

// FormatMetrics renders "name value" lines for the HTTP metrics endpoint.
func FormatMetrics() string {
	var sb strings.Builder
	for _, c := range counters {
		fmt.Fprintf(&sb, "%s %d\n", c.name, c.v.Load())
	}
	hits, misses := CacheStats()
	fmt.Fprintf(&sb, "cache_hits %d\ncache_misses %d\n", hits, misses)
	return sb.String()
}

func IncrGenerationRun()     { generationRuns.v.Add(1) }
func IncrGenerationError()   { generationErrors.v.Add(1) }
func IncrMetadataRequest()   { metadataRequests.v.Add(1) }
func IncrMetadataError()     { metadataErrors.v.Add(1) }
func IncrTranscriptRequest() { transcriptRequests.v.Add(1) }
func IncrTranscriptError()   { transcriptErrors.v.Add(1) }
func IncrTwitterRequest()    { twitterRequests.v.Add(1) }
func AddFilesCleaned(n int)  { filesCleaned.v.Add(int64(n)) }

// TrackOperation runs fn and logs a warning when it exceeds slowOperation.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start); elapsed > slowOperation {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
