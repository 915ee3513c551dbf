package engine

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// LLM adapts the go-kit chat client to the Completer contract used by the
// content package. It paces requests and counts calls/errors.
type LLM struct {
	client  *llm.Client
	limiter *rate.Limiter
}

// NewLLM wraps client. rpm <= 0 disables pacing.
func NewLLM(client *llm.Client, rpm int) *LLM {
	l := &LLM{client: client}
	if rpm > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
	return l
}

// NewLLMFromConfig builds the chat client from the engine configuration.
func NewLLMFromConfig(c Config) *LLM {
	client := llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(c.HTTPClient),
	)
	return NewLLM(client, c.LLMRequestsPerMinute)
}

// Complete sends a role-tagged system/user pair and returns the trimmed,
// fence-stripped reply. maxTokens <= 0 keeps the client default.
func (l *LLM) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	llmCalls.v.Add(1)
	var (
		resp string
		err  error
	)
	if maxTokens > 0 {
		resp, err = l.client.Complete(ctx, system, user,
			llm.WithChatTemperature(temperature),
			llm.WithChatMaxTokens(maxTokens),
		)
	} else {
		resp, err = l.client.Complete(ctx, system, user, llm.WithChatTemperature(temperature))
	}
	if err != nil {
		llmErrors.v.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
