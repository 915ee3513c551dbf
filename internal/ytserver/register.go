// Package ytserver exposes the content studio as MCP tools.
package ytserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/content"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/history"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/sources"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/ytref"
)

// MetadataSource returns video metadata. *sources.Metadata implements it.
type MetadataSource interface {
	Video(ctx context.Context, videoID string) (*sources.VideoMetadata, error)
}

// TranscriptFunc fetches caption text for a video.
type TranscriptFunc func(ctx context.Context, videoID string, langs []string) (string, error)

// TrendFunc samples recent social posts for a category.
type TrendFunc func(ctx context.Context, category string, limit int) ([]sources.TrendSample, error)

// Tools carries the collaborators every tool handler needs.
type Tools struct {
	Generator   *content.Generator
	Analyzer    *content.Analyzer
	Metadata    MetadataSource
	Transcripts TranscriptFunc
	Trends      TrendFunc
	History     history.Store // nil disables recording
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 12

// RegisterTools registers every content studio tool on server.
func RegisterTools(server *mcp.Server, t *Tools) {
	registerVideoTools(server, t)
	registerValidateInput(server)
	registerGenerateTools(server, t)
	registerAnalyzeTools(server, t)
}

// resolveInput turns user input into a reference carrying an id.
func resolveInput(field, raw string) (ytref.VideoReference, error) {
	if raw == "" {
		return ytref.VideoReference{}, engine.ValidationError(field, "is required")
	}
	ref := ytref.Resolve(raw)
	if !ref.HasID() {
		return ref, fmt.Errorf("%w: %q", engine.ErrInvalidReference, raw)
	}
	return ref, nil
}

// handler adapts a plain handler to the mcp.AddTool signature.
func handler[In, Out any](name string, fn func(context.Context, In) (Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		var out Out
		err := engine.TrackOperation(ctx, name, func(ctx context.Context) error {
			var err error
			out, err = fn(ctx, in)
			return err
		})
		if err != nil {
			slog.Warn(name+" error", slog.Any("error", err))
		}
		return nil, out, err
	}
}
