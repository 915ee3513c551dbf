// Package history records completed generation runs. Recording is best
// effort: callers log failures and never fail a generation because of them.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one successful generate_social_content run.
type Record struct {
	ID        string            `json:"id"`
	VideoID   string            `json:"video_id"`
	Platforms []string          `json:"platforms"`
	Hashtags  []string          `json:"hashtags"`
	Posts     map[string]string `json:"posts"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewRecord stamps a run with a fresh id and the current UTC time.
func NewRecord(videoID string, platforms, hashtags []string, posts map[string]string) Record {
	return Record{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		Platforms: platforms,
		Hashtags:  hashtags,
		Posts:     posts,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists generation runs.
type Store interface {
	Save(ctx context.Context, r Record) error
	// List returns runs newest first. An empty videoID lists all videos.
	List(ctx context.Context, videoID string, limit int) ([]Record, error)
	Close() error
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultListLimit
	case n > maxListLimit:
		return maxListLimit
	}
	return n
}
