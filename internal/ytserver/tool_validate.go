package ytserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/validate"
)

type ValidateInput struct {
	Kind      string  `json:"kind" jsonschema:"What to validate: url, timestamp, duration, resolution, format, output_path or file_size"`
	Value     string  `json:"value,omitempty" jsonschema:"Text to validate (url, timestamp, resolution, format, output_path)"`
	Start     float64 `json:"start,omitempty" jsonschema:"Clip start in seconds (duration)"`
	End       float64 `json:"end,omitempty" jsonschema:"Clip end in seconds (duration)"`
	Max       float64 `json:"max,omitempty" jsonschema:"Maximum clip length in seconds, 0 for unbounded (duration)"`
	SizeBytes int64   `json:"size_bytes,omitempty" jsonschema:"File size in bytes (file_size)"`
	MaxMB     float64 `json:"max_mb,omitempty" jsonschema:"Size limit in megabytes (file_size, default: server MAX_VIDEO_SIZE_MB)"`
}

type ValidateOutput struct {
	Kind         string `json:"kind"`
	IsValid      bool   `json:"is_valid"`
	Value        any    `json:"value,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func registerValidateInput(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_input",
		Description: "Validate a YouTube URL, timestamp, clip duration, resolution, container format, output path or file size. Invalid input is reported in the result, not as an error.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handler("validate_input", validateInput))
}

func validateInput(_ context.Context, in ValidateInput) (ValidateOutput, error) {
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	switch kind {
	case "url":
		return fromResult(kind, validate.URL(in.Value)), nil
	case "timestamp":
		return fromResult(kind, validate.Timestamp(in.Value)), nil
	case "duration":
		limit := in.Max
		if limit <= 0 {
			limit = validate.Unbounded
		}
		return fromResult(kind, validate.Duration(in.Start, in.End, limit)), nil
	case "resolution":
		return fromResult(kind, validate.ParseResolution(in.Value)), nil
	case "format":
		return fromResult(kind, validate.ParseVideoFormat(in.Value)), nil
	case "output_path":
		return fromResult(kind, validate.OutputPath(in.Value)), nil
	case "file_size":
		maxMB := in.MaxMB
		if maxMB <= 0 {
			maxMB = engine.Cfg.MaxVideoSizeMB
		}
		return fromResult(kind, validate.FileSize(in.SizeBytes, maxMB)), nil
	case "":
		return ValidateOutput{}, engine.ValidationError("kind", "is required")
	default:
		return ValidateOutput{}, engine.ValidationError("kind", "unknown kind "+in.Kind)
	}
}

func fromResult[T any](kind string, r validate.Result[T]) ValidateOutput {
	if v, ok := r.Value(); ok {
		return ValidateOutput{Kind: kind, IsValid: true, Value: v}
	}
	return ValidateOutput{Kind: kind, ErrorMessage: r.Message()}
}
