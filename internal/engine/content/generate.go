// Package content drives LLM generation of social posts, hashtags and
// supporting analyses for a resolved YouTube video.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/ytref"
)

// Completer is the generative text service. *engine.LLM implements it.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

const defaultTemperature = 0.7

var errNoHashtags = errors.New("no hashtags in response")

// GenerationResult is the aggregate of one GeneratePlatformContent run.
// Platforms lists the keys of Posts in processing order.
type GenerationResult struct {
	VideoID   string            `json:"video_id"`
	VideoLink string            `json:"video_link"`
	Hashtags  []string          `json:"hashtags"`
	Platforms []string          `json:"platforms"`
	Posts     map[string]string `json:"posts"`
}

// Post returns the generated text for platform and whether it exists.
func (r *GenerationResult) Post(platform string) (string, bool) {
	p, ok := r.Posts[platform]
	return p, ok
}

// Generator orchestrates hashtag and per-platform post generation.
// It holds no per-run state and is safe for concurrent use.
type Generator struct {
	llm         Completer
	platforms   *platformTable
	budget      int
	temperature float64
}

// Option configures a Generator. An Analyzer reads only the temperature.
type Option func(*generatorOptions)

type generatorOptions struct {
	budget      int
	temperature float64
	platforms   []PlatformSpec
}

// WithContentBudget sets how many runes of the content body are sent to the
// service. Values <= 0 keep engine.DefaultContentBudget.
func WithContentBudget(n int) Option {
	return func(o *generatorOptions) {
		if n > 0 {
			o.budget = n
		}
	}
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *generatorOptions) { o.temperature = t }
}

// WithPlatforms replaces the platform table.
func WithPlatforms(specs []PlatformSpec) Option {
	return func(o *generatorOptions) { o.platforms = specs }
}

// NewGenerator validates the platform table and returns a ready Generator.
func NewGenerator(llm Completer, opts ...Option) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("content: nil completer")
	}
	o := generatorOptions{
		budget:      engine.DefaultContentBudget,
		temperature: defaultTemperature,
		platforms:   DefaultPlatforms,
	}
	for _, opt := range opts {
		opt(&o)
	}
	table, err := newPlatformTable(o.platforms)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return &Generator{llm: llm, platforms: table, budget: o.budget, temperature: o.temperature}, nil
}

// Platforms lists the supported platform names.
func (g *Generator) Platforms() []string { return g.platforms.names() }

type postPayload struct {
	Post *string `json:"post"`
}

// GeneratePlatformContent generates one hashtag list and one post per known
// platform, sequentially. Unknown platforms are skipped. The first failing
// call aborts the run with a *engine.GenerationError and no partial result.
func (g *Generator) GeneratePlatformContent(ctx context.Context, ref ytref.VideoReference, body string, platforms []string) (*GenerationResult, error) {
	if !ref.HasID() {
		return nil, engine.ErrInvalidReference
	}

	specs, unknown := g.platforms.resolve(platforms)
	for _, name := range unknown {
		slog.Debug("generate: platform skipped", slog.String("platform", name))
	}

	engine.IncrGenerationRun()
	res, err := g.run(ctx, ref, body, specs)
	if err != nil {
		engine.IncrGenerationError()
		slog.Warn("generate: failed", slog.String("video_id", ref.ID), slog.Any("error", err))
		return nil, err
	}
	return res, nil
}

func (g *Generator) run(ctx context.Context, ref ytref.VideoReference, body string, specs []PlatformSpec) (*GenerationResult, error) {
	summary := engine.TruncateRunes(body, g.budget, "")
	link := ref.WatchURL()

	raw, err := g.llm.Complete(ctx, hashtagSystem, fmt.Sprintf(hashtagPrompt, summary), g.temperature, 0)
	if err != nil {
		return nil, &engine.GenerationError{Op: "hashtags", Err: err}
	}
	hashtags := NormalizeHashtags(raw)
	if len(hashtags) == 0 {
		return nil, &engine.GenerationError{Op: "hashtags", Err: &engine.MalformedResponseError{Raw: raw, Err: errNoHashtags}}
	}

	res := &GenerationResult{
		VideoID:   ref.ID,
		VideoLink: link,
		Hashtags:  hashtags,
		Platforms: make([]string, 0, len(specs)),
		Posts:     make(map[string]string, len(specs)),
	}
	tagLine := strings.Join(hashtags, " ")

	for _, spec := range specs {
		op := "post " + spec.Name
		prompt := fmt.Sprintf(postPrompt, spec.Name, spec.MaxLength, spec.Style, link, tagLine, summary)
		resp, err := g.llm.Complete(ctx, postSystem, prompt, g.temperature, 0)
		if err != nil {
			return nil, &engine.GenerationError{Op: op, Err: err}
		}
		payload, err := engine.DecodeStructured[postPayload](resp)
		if err != nil {
			return nil, &engine.GenerationError{Op: op, Err: err}
		}
		if payload.Post == nil {
			return nil, &engine.GenerationError{Op: op, Err: &engine.MalformedResponseError{Raw: resp, Err: errors.New(`missing "post" field`)}}
		}
		res.Platforms = append(res.Platforms, spec.Name)
		res.Posts[spec.Name] = *payload.Post
		slog.Debug("generate: post done", slog.String("platform", spec.Name), slog.Int("chars", len([]rune(*payload.Post))))
	}
	return res, nil
}
