package ytserver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/content"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/sources"
)

const defaultTrendSamples = 10

type SummarizeInput struct {
	Text     string `json:"text" jsonschema:"Text to summarize"`
	MaxWords int    `json:"max_words,omitempty" jsonschema:"Word limit for the summary (default 150)"`
}

type SummarizeOutput struct {
	Summary string `json:"summary"`
}

// TextOrVideoInput accepts either raw text or a video whose transcript is used.
type TextOrVideoInput struct {
	Text string `json:"text,omitempty" jsonschema:"Raw transcript text"`
	URL  string `json:"url,omitempty" jsonschema:"YouTube URL or ID; its transcript is used when text is empty"`
}

type FormatTranscriptOutput struct {
	Formatted string `json:"formatted"`
}

type KeyPointsOutput struct {
	Points []string `json:"points"`
}

type SEOInput struct {
	URL         string   `json:"url,omitempty" jsonschema:"YouTube URL or ID; title, description and tags are read from the video"`
	Title       string   `json:"title,omitempty" jsonschema:"Video title (when no url)"`
	Description string   `json:"description,omitempty" jsonschema:"Video description (when no url)"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Video tags (when no url)"`
}

type TrendsInput struct {
	Category   string `json:"category" jsonschema:"Content category, e.g. technology, gaming, cooking"`
	UseTwitter bool   `json:"use_twitter,omitempty" jsonschema:"Ground the analysis on recent popular tweets"`
	Samples    int    `json:"samples,omitempty" jsonschema:"Tweets to sample when use_twitter is set (default 10)"`
}

type TrendsOutput struct {
	Report  *content.TrendReport  `json:"report"`
	Samples []sources.TrendSample `json:"samples,omitempty"`
}

type ScriptInput struct {
	Title   string `json:"title" jsonschema:"Video title"`
	Outline string `json:"outline,omitempty" jsonschema:"Optional outline or key points"`
}

func registerAnalyzeTools(server *mcp.Server, t *Tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_text",
		Description: "Summarize text in at most max_words words.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("summarize_text", t.summarizeText))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_transcript",
		Description: "Clean up a raw transcript: punctuation, capitalization and paragraphs. Accepts text or a video URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("format_transcript", t.formatTranscript))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "key_points",
		Description: "Extract the key points of a transcript. Accepts text or a video URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("key_points", t.keyPoints))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "seo_analyze",
		Description: "Suggest SEO improvements for a video title, description and tags.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("seo_analyze", t.seoAnalyze))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trending_topics",
		Description: "Trending topics, content ideas and posting advice for a category, optionally grounded on recent tweets.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("trending_topics", t.trendingTopics))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_script",
		Description: "Draft a video script (intro, sections, outro, chapter timestamps) from a title and outline.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("video_script", t.videoScript))
}

func (t *Tools) summarizeText(ctx context.Context, in SummarizeInput) (SummarizeOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return SummarizeOutput{}, engine.ValidationError("text", "is required")
	}
	s, err := t.Analyzer.Summarize(ctx, in.Text, in.MaxWords)
	if err != nil {
		return SummarizeOutput{}, err
	}
	return SummarizeOutput{Summary: s}, nil
}

// textOrTranscript returns in.Text, or the transcript of in.URL.
func (t *Tools) textOrTranscript(ctx context.Context, in TextOrVideoInput) (string, error) {
	if s := strings.TrimSpace(in.Text); s != "" {
		return s, nil
	}
	if in.URL == "" {
		return "", engine.ValidationError("text", "text or url is required")
	}
	ref, err := resolveInput("url", in.URL)
	if err != nil {
		return "", err
	}
	return t.transcript(ctx, ref.ID, nil)
}

func (t *Tools) formatTranscript(ctx context.Context, in TextOrVideoInput) (FormatTranscriptOutput, error) {
	text, err := t.textOrTranscript(ctx, in)
	if err != nil {
		return FormatTranscriptOutput{}, err
	}
	out, err := t.Analyzer.FormatTranscript(ctx, text)
	if err != nil {
		return FormatTranscriptOutput{}, err
	}
	return FormatTranscriptOutput{Formatted: out}, nil
}

func (t *Tools) keyPoints(ctx context.Context, in TextOrVideoInput) (KeyPointsOutput, error) {
	text, err := t.textOrTranscript(ctx, in)
	if err != nil {
		return KeyPointsOutput{}, err
	}
	points, err := t.Analyzer.ExtractKeyPoints(ctx, text)
	if err != nil {
		return KeyPointsOutput{}, err
	}
	if points == nil {
		points = []string{}
	}
	return KeyPointsOutput{Points: points}, nil
}

func (t *Tools) seoAnalyze(ctx context.Context, in SEOInput) (content.SEOAnalysis, error) {
	title, desc, tags := in.Title, in.Description, in.Tags
	if in.URL != "" {
		ref, err := resolveInput("url", in.URL)
		if err != nil {
			return content.SEOAnalysis{}, err
		}
		meta, err := t.metadata(ctx, ref.ID)
		if err != nil {
			return content.SEOAnalysis{}, err
		}
		title, desc, tags = meta.Title, meta.Description, meta.Tags
	}
	if strings.TrimSpace(title) == "" {
		return content.SEOAnalysis{}, engine.ValidationError("title", "title or url is required")
	}
	res, err := t.Analyzer.AnalyzeSEO(ctx, title, desc, tags)
	if err != nil {
		return content.SEOAnalysis{}, err
	}
	return *res, nil
}

func (t *Tools) trendingTopics(ctx context.Context, in TrendsInput) (TrendsOutput, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return TrendsOutput{}, engine.ValidationError("category", "is required")
	}

	var samples []sources.TrendSample
	if in.UseTwitter && t.Trends != nil {
		limit := in.Samples
		if limit <= 0 {
			limit = defaultTrendSamples
		}
		var err error
		samples, err = t.Trends(ctx, category, limit)
		switch {
		case errors.Is(err, sources.ErrTwitterDisabled):
			slog.Debug("trends: twitter disabled, continuing without samples")
		case err != nil:
			slog.Warn("trends: sampling failed", slog.String("category", category), slog.Any("error", err))
			samples = nil
		}
	}

	report, err := t.Analyzer.TrendingTopics(ctx, category, sources.SampleTexts(samples))
	if err != nil {
		return TrendsOutput{}, err
	}
	return TrendsOutput{Report: report, Samples: samples}, nil
}

func (t *Tools) videoScript(ctx context.Context, in ScriptInput) (content.Script, error) {
	if strings.TrimSpace(in.Title) == "" {
		return content.Script{}, engine.ValidationError("title", "is required")
	}
	s, err := t.Analyzer.VideoScript(ctx, in.Title, in.Outline)
	if err != nil {
		return content.Script{}, err
	}
	return *s, nil
}
