package ytserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/sources"
	"github.com/anatolykoptev/go_ytcontent/internal/toolutil"
)

type ResolveVideoInput struct {
	URL string `json:"url" jsonschema:"YouTube URL in any common form (watch, youtu.be, embed, shorts) or a bare 11-character video ID"`
}

type ResolveVideoOutput struct {
	RawInput    string `json:"raw_input"`
	CanonicalID string `json:"canonical_id"`
	WatchURL    string `json:"watch_url"`
}

type VideoInput struct {
	URL string `json:"url" jsonschema:"YouTube URL or 11-character video ID"`
}

type TranscriptInput struct {
	URL       string   `json:"url" jsonschema:"YouTube URL or 11-character video ID"`
	Languages []string `json:"languages,omitempty" jsonschema:"Preferred caption languages in order (default: server TRANSCRIPT_LANGS)"`
	Format    bool     `json:"format,omitempty" jsonschema:"Also return an LLM-cleaned version with punctuation and paragraphs"`
}

type TranscriptOutput struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Formatted  string `json:"formatted,omitempty"`
	Chars      int    `json:"chars"`
}

func registerVideoTools(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_video",
		Description: "Resolve a YouTube URL or ID into the canonical 11-character video ID and watch URL. No network access.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("resolve_video", resolveVideo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_metadata",
		Description: "Fetch video metadata: title, description, channel, tags, duration and view/like/comment counts.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("video_metadata", t.videoMetadata))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_transcript",
		Description: "Fetch the caption transcript of a YouTube video. Optionally returns an LLM-formatted copy.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("video_transcript", t.videoTranscript))
}

func resolveVideo(_ context.Context, in ResolveVideoInput) (ResolveVideoOutput, error) {
	ref, err := resolveInput("url", in.URL)
	if err != nil {
		return ResolveVideoOutput{}, err
	}
	return ResolveVideoOutput{RawInput: ref.Raw, CanonicalID: ref.ID, WatchURL: ref.WatchURL()}, nil
}

func (t *Tools) videoMetadata(ctx context.Context, in VideoInput) (sources.VideoMetadata, error) {
	ref, err := resolveInput("url", in.URL)
	if err != nil {
		return sources.VideoMetadata{}, err
	}
	meta, err := t.metadata(ctx, ref.ID)
	if err != nil {
		return sources.VideoMetadata{}, err
	}
	return *meta, nil
}

// metadata is the cached metadata lookup shared by several tools.
func (t *Tools) metadata(ctx context.Context, videoID string) (*sources.VideoMetadata, error) {
	if t.Metadata == nil {
		return nil, &engine.DependencyError{Source: "metadata", Err: errors.New("not configured")}
	}
	return toolutil.Cached(ctx, engine.CacheKey("metadata", videoID), func(ctx context.Context) (*sources.VideoMetadata, error) {
		return t.Metadata.Video(ctx, videoID)
	})
}

// transcript is the cached transcript lookup shared by several tools.
func (t *Tools) transcript(ctx context.Context, videoID string, langs []string) (string, error) {
	if t.Transcripts == nil {
		return "", &engine.DependencyError{Source: "transcript", Err: engine.ErrTranscriptUnavailable}
	}
	key := engine.CacheKey("transcript", videoID, strings.Join(langs, ","))
	return toolutil.Cached(ctx, key, func(ctx context.Context) (string, error) {
		return t.Transcripts(ctx, videoID, langs)
	})
}

func (t *Tools) videoTranscript(ctx context.Context, in TranscriptInput) (TranscriptOutput, error) {
	ref, err := resolveInput("url", in.URL)
	if err != nil {
		return TranscriptOutput{}, err
	}
	text, err := t.transcript(ctx, ref.ID, in.Languages)
	if err != nil {
		return TranscriptOutput{}, err
	}
	out := TranscriptOutput{VideoID: ref.ID, Transcript: text, Chars: len([]rune(text))}
	if in.Format {
		formatted, err := t.Analyzer.FormatTranscript(ctx, text)
		if err != nil {
			return TranscriptOutput{}, err
		}
		out.Formatted = formatted
	}
	return out, nil
}
