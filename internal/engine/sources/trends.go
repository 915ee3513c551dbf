package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

// ErrTwitterDisabled means no Twitter client is configured.
var ErrTwitterDisabled = errors.New("twitter client not configured")

// TrendSample is one recent post about a category.
type TrendSample struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
}

func (s TrendSample) engagement() int { return s.Likes + 2*s.Retweets }

// trendQuery narrows a category search to video-related posts.
func trendQuery(category string) string {
	category = strings.TrimSpace(category)
	lower := strings.ToLower(category)
	if strings.Contains(lower, "youtube") || strings.Contains(lower, "video") {
		return category
	}
	return category + " (youtube OR video)"
}

// SampleTrendTweets returns up to limit recent posts about category, most
// engaging first.
func SampleTrendTweets(ctx context.Context, category string, limit int) ([]TrendSample, error) {
	tw := engine.Cfg.TwitterClient
	if tw == nil {
		return nil, ErrTwitterDisabled
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	engine.IncrTwitterRequest()

	q := trendQuery(category)
	tweets, err := tw.SearchTimeline(ctx, q, limit)
	if err != nil {
		return nil, &engine.DependencyError{Source: "twitter", Err: fmt.Errorf("search: %w", err)}
	}
	slog.Debug("trends: twitter samples", slog.Int("tweets", len(tweets)), slog.String("query", q))

	out := make([]TrendSample, 0, len(tweets))
	for _, t := range tweets {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		out = append(out, TrendSample{
			ID:       t.ID,
			Text:     text,
			URL:      "https://x.com/i/status/" + t.ID,
			Likes:    t.Likes,
			Retweets: t.Retweets,
		})
	}
	rankSamples(out)
	return out, nil
}

func rankSamples(s []TrendSample) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].engagement() > s[j].engagement() })
}

// SampleTexts extracts the post texts.
func SampleTexts(samples []TrendSample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Text
	}
	return out
}
