package ytserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/content"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/history"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/ytref"
)

type GenerateInput struct {
	URL       string   `json:"url" jsonschema:"YouTube URL or 11-character video ID"`
	Platforms []string `json:"platforms,omitempty" jsonschema:"Target platforms: Twitter, Instagram, LinkedIn, Facebook (default: all). Unknown names are skipped."`
	Content   string   `json:"content,omitempty" jsonschema:"Source text to work from. When empty the transcript is used, then title and description."`
}

type GenerateOutput struct {
	Result     *content.GenerationResult `json:"result"`
	BodySource string                    `json:"body_source"`
	RecordID   string                    `json:"record_id,omitempty"`
}

type HistoryInput struct {
	URL   string `json:"url,omitempty" jsonschema:"Limit to one video (URL or ID). Empty lists all videos."`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum runs to return (default 20, max 100)"`
}

type HistoryOutput struct {
	Runs []history.Record `json:"runs"`
}

const (
	bodyFromInput      = "input"
	bodyFromTranscript = "transcript"
	bodyFromMetadata   = "metadata"
)

func registerGenerateTools(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_social_content",
		Description: "Generate hashtags and one post per social platform (Twitter, Instagram, LinkedIn, Facebook) for a YouTube video.",
	}, handler("generate_social_content", t.generateSocialContent))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generation_history",
		Description: "List previous generate_social_content runs, newest first.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("generation_history", t.generationHistory))
}

func (t *Tools) generateSocialContent(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	ref, err := resolveInput("url", in.URL)
	if err != nil {
		return GenerateOutput{}, err
	}
	platforms := in.Platforms
	if len(platforms) == 0 {
		platforms = t.Generator.Platforms()
	}

	body, source, err := t.sourceBody(ctx, ref, in.Content)
	if err != nil {
		return GenerateOutput{}, err
	}

	res, err := t.Generator.GeneratePlatformContent(ctx, ref, body, platforms)
	if err != nil {
		return GenerateOutput{}, err
	}
	out := GenerateOutput{Result: res, BodySource: source}

	if t.History != nil {
		rec := history.NewRecord(res.VideoID, res.Platforms, res.Hashtags, res.Posts)
		if err := t.History.Save(ctx, rec); err != nil {
			slog.Warn("history: save failed", slog.String("video_id", res.VideoID), slog.Any("error", err))
		} else {
			out.RecordID = rec.ID
		}
	}
	return out, nil
}

// sourceBody picks the text a generation works from: explicit content,
// then the transcript, then title and description.
func (t *Tools) sourceBody(ctx context.Context, ref ytref.VideoReference, explicit string) (string, string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, bodyFromInput, nil
	}

	text, err := t.transcript(ctx, ref.ID, nil)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, bodyFromTranscript, nil
	}
	if err != nil && !errors.Is(err, engine.ErrTranscriptUnavailable) {
		return "", "", err
	}
	slog.Debug("generate: transcript unavailable, using metadata", slog.String("video_id", ref.ID))

	meta, err := t.metadata(ctx, ref.ID)
	if err != nil {
		return "", "", err
	}
	body := strings.TrimSpace(meta.Title + "\n\n" + meta.Description)
	if body == "" {
		return "", "", &engine.DependencyError{Source: "metadata", Err: errors.New("video has no title or description")}
	}
	return body, bodyFromMetadata, nil
}

func (t *Tools) generationHistory(ctx context.Context, in HistoryInput) (HistoryOutput, error) {
	if t.History == nil {
		return HistoryOutput{}, &engine.DependencyError{Source: "history", Err: errors.New("not configured")}
	}
	var videoID string
	if in.URL != "" {
		ref, err := resolveInput("url", in.URL)
		if err != nil {
			return HistoryOutput{}, err
		}
		videoID = ref.ID
	}
	runs, err := t.History.List(ctx, videoID, in.Limit)
	if err != nil {
		return HistoryOutput{}, &engine.DependencyError{Source: "history", Err: err}
	}
	if runs == nil {
		runs = []history.Record{}
	}
	return HistoryOutput{Runs: runs}, nil
}
