package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

// ErrVideoNotFound is returned when the provider knows no video with the id.
var ErrVideoNotFound = errors.New("video not found")

// Metadata sources.
const (
	SourceDataAPI   = "data_api"
	SourceWatchPage = "watch_page"
)

// VideoMetadata is the descriptive metadata of one video.
type VideoMetadata struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ChannelID       string   `json:"channel_id,omitempty"`
	ChannelTitle    string   `json:"channel_title,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	PublishedAt     string   `json:"published_at,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
	ViewCount       uint64   `json:"view_count"`
	LikeCount       uint64   `json:"like_count"`
	CommentCount    uint64   `json:"comment_count"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	Source          string   `json:"source"`
}

// Duration formats DurationSeconds as H:MM:SS or M:SS.
func (m *VideoMetadata) Duration() string {
	s := m.DurationSeconds
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Metadata is the metadata gateway. With an API key it queries YouTube Data
// API v3; without one it reads the public watch page.
type Metadata struct {
	svc *youtube.Service
}

// NewMetadata builds the gateway. An empty apiKey selects watch-page mode.
// opts are appended to the Data API client options.
func NewMetadata(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Metadata, error) {
	if apiKey == "" && len(opts) == 0 {
		return &Metadata{}, nil
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}
	return &Metadata{svc: svc}, nil
}

// Video returns metadata for videoID. Provider failures are surfaced as
// *engine.DependencyError and never retried here.
func (m *Metadata) Video(ctx context.Context, videoID string) (*VideoMetadata, error) {
	engine.IncrMetadataRequest()

	var (
		meta *VideoMetadata
		err  error
	)
	if m.svc != nil {
		meta, err = m.fromDataAPI(ctx, videoID)
	} else {
		meta, err = fromWatchPage(ctx, videoID)
	}
	if err != nil {
		engine.IncrMetadataError()
		slog.Warn("metadata: lookup failed", slog.String("id", videoID), slog.Any("error", err))
		return nil, &engine.DependencyError{Source: "metadata", Err: err}
	}
	return meta, nil
}

func (m *Metadata) fromDataAPI(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := m.svc.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	return videoFromAPI(resp.Items[0]), nil
}

func videoFromAPI(item *youtube.Video) *VideoMetadata {
	meta := &VideoMetadata{ID: item.Id, Source: SourceDataAPI}
	if sn := item.Snippet; sn != nil {
		meta.Title = sn.Title
		meta.Description = sn.Description
		meta.ChannelID = sn.ChannelId
		meta.ChannelTitle = sn.ChannelTitle
		meta.Tags = sn.Tags
		meta.PublishedAt = sn.PublishedAt
		if sn.Thumbnails != nil && sn.Thumbnails.High != nil {
			meta.Thumbnail = sn.Thumbnails.High.Url
		}
	}
	if cd := item.ContentDetails; cd != nil {
		meta.DurationSeconds = parseISODuration(cd.Duration)
	}
	if st := item.Statistics; st != nil {
		meta.ViewCount = st.ViewCount
		meta.LikeCount = st.LikeCount
		meta.CommentCount = st.CommentCount
	}
	return meta
}

var isoDurationRE = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODuration converts an ISO 8601 duration ("PT1H2M3S") to seconds.
// Unparseable input yields 0.
func parseISODuration(s string) int {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	total := 0
	for i, mult := range []int{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, _ := strconv.Atoi(m[i+1])
		total += n * mult
	}
	return total
}

func fromWatchPage(ctx context.Context, videoID string) (*VideoMetadata, error) {
	page, err := fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return parseWatchPage(page, videoID)
}

// parseWatchPage reads videoDetails from ytInitialPlayerResponse and fills
// the gaps from the page's meta tags.
func parseWatchPage(page []byte, videoID string) (*VideoMetadata, error) {
	meta := &VideoMetadata{ID: videoID, Source: SourceWatchPage}

	if pr, err := extractPlayerResponse(page); err == nil && pr.VideoDetails != nil {
		vd := pr.VideoDetails
		meta.Title = vd.Title
		meta.Description = vd.ShortDescription
		meta.ChannelID = vd.ChannelID
		meta.ChannelTitle = vd.Author
		meta.Tags = vd.Keywords
		meta.DurationSeconds, _ = strconv.Atoi(vd.LengthSeconds)
		meta.ViewCount, _ = strconv.ParseUint(vd.ViewCount, 10, 64)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}
	attr := func(sel string) string {
		v, _ := doc.Find(sel).First().Attr("content")
		return strings.TrimSpace(v)
	}
	if meta.Title == "" {
		meta.Title = attr(`meta[property="og:title"]`)
	}
	if meta.Description == "" {
		meta.Description = attr(`meta[property="og:description"]`)
	}
	if meta.ChannelID == "" {
		meta.ChannelID = attr(`meta[itemprop="channelId"]`)
	}
	if meta.ChannelTitle == "" {
		if v, ok := doc.Find(`span[itemprop="author"] link[itemprop="name"]`).First().Attr("content"); ok {
			meta.ChannelTitle = strings.TrimSpace(v)
		}
	}
	if len(meta.Tags) == 0 {
		for _, kw := range strings.Split(attr(`meta[name="keywords"]`), ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Tags = append(meta.Tags, kw)
			}
		}
	}
	if meta.DurationSeconds == 0 {
		meta.DurationSeconds = parseISODuration(attr(`meta[itemprop="duration"]`))
	}
	if meta.ViewCount == 0 {
		meta.ViewCount, _ = strconv.ParseUint(attr(`meta[itemprop="interactionCount"]`), 10, 64)
	}
	meta.PublishedAt = attr(`meta[itemprop="datePublished"]`)
	meta.Thumbnail = attr(`meta[property="og:image"]`)

	if meta.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	return meta, nil
}
