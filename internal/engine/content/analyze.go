package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

const lowTemperature = 0.3

// SEOAnalysis is the structured answer of AnalyzeSEO.
type SEOAnalysis struct {
	TitleSuggestions        []string `json:"title_suggestions"`
	DescriptionImprovements string   `json:"description_improvements"`
	TagSuggestions          []string `json:"tag_suggestions"`
	MissingElements         []string `json:"missing_elements"`
}

// TrendReport is the structured answer of TrendingTopics.
type TrendReport struct {
	TrendingTopics []string `json:"trending_topics"`
	ContentIdeas   []string `json:"content_ideas"`
	BestPractices  []string `json:"best_practices"`
	OptimalTiming  string   `json:"optimal_timing"`
}

// ScriptSection is one titled block of a video script.
type ScriptSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ScriptTimestamp marks a chapter in a video script.
type ScriptTimestamp struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Script is the structured answer of VideoScript.
type Script struct {
	Intro      string            `json:"intro"`
	Sections   []ScriptSection   `json:"sections"`
	Outro      string            `json:"outro"`
	Timestamps []ScriptTimestamp `json:"timestamps"`
}

// Analyzer runs single-call analyses over video text.
type Analyzer struct {
	llm         Completer
	temperature float64
}

// NewAnalyzer returns an Analyzer using llm. WithTemperature sets the
// temperature of the open-ended analyses; transcript formatting and key
// points always run at lowTemperature.
func NewAnalyzer(llm Completer, opts ...Option) *Analyzer {
	o := generatorOptions{temperature: defaultTemperature}
	for _, opt := range opts {
		opt(&o)
	}
	return &Analyzer{llm: llm, temperature: o.temperature}
}

// Summarize returns a summary of at most maxWords words (asked, not enforced).
func (a *Analyzer) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	if maxWords <= 0 {
		maxWords = 150
	}
	out, err := a.llm.Complete(ctx, summarySystem, fmt.Sprintf(summaryPrompt, maxWords, text), a.temperature, maxWords*2)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// AnalyzeSEO suggests title, description and tag improvements.
func (a *Analyzer) AnalyzeSEO(ctx context.Context, title, description string, tags []string) (*SEOAnalysis, error) {
	tagText := "No tags"
	if len(tags) > 0 {
		tagText = strings.Join(tags, ", ")
	}
	return ask[SEOAnalysis](ctx, a, "seo", seoSystem, fmt.Sprintf(seoPrompt, title, description, tagText), a.temperature)
}

// TrendingTopics analyzes trends for category. samples are optional recent
// social posts used as extra context.
func (a *Analyzer) TrendingTopics(ctx context.Context, category string, samples []string) (*TrendReport, error) {
	var extra string
	if len(samples) > 0 {
		var sb strings.Builder
		sb.WriteString("\nRecent social posts about this category:\n")
		for _, s := range samples {
			sb.WriteString("- ")
			sb.WriteString(strings.ReplaceAll(strings.TrimSpace(s), "\n", " "))
			sb.WriteByte('\n')
		}
		extra = sb.String()
	}
	return ask[TrendReport](ctx, a, "trends", trendsSystem, fmt.Sprintf(trendsPrompt, category, extra), a.temperature)
}

// VideoScript drafts a script from a title and outline.
func (a *Analyzer) VideoScript(ctx context.Context, title, outline string) (*Script, error) {
	return ask[Script](ctx, a, "script", scriptSystem, fmt.Sprintf(scriptPrompt, title, outline), a.temperature)
}

// FormatTranscript cleans punctuation and paragraphs of a raw transcript.
func (a *Analyzer) FormatTranscript(ctx context.Context, raw string) (string, error) {
	out, err := a.llm.Complete(ctx, transcriptSystem, fmt.Sprintf(transcriptPrompt, raw), lowTemperature, 0)
	if err != nil {
		return "", fmt.Errorf("format transcript: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ExtractKeyPoints returns one key point per non-empty response line,
// with list markers removed.
func (a *Analyzer) ExtractKeyPoints(ctx context.Context, transcript string) ([]string, error) {
	out, err := a.llm.Complete(ctx, keyPointsSystem, fmt.Sprintf(keyPointsPrompt, transcript), lowTemperature, 0)
	if err != nil {
		return nil, fmt.Errorf("key points: %w", err)
	}
	return splitPoints(out), nil
}

func splitPoints(text string) []string {
	var points []string
	for _, line := range strings.Split(text, "\n") {
		p := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "-*• "))
		if p != "" {
			points = append(points, p)
		}
	}
	return points
}

// ask issues one call and decodes the JSON answer into T.
func ask[T any](ctx context.Context, a *Analyzer, op, system, prompt string, temperature float64) (*T, error) {
	out, err := a.llm.Complete(ctx, system, prompt, temperature, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v, err := engine.DecodeStructured[T](out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}
