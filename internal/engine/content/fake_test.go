package content

import (
	"context"
	"errors"
	"sync"
)

type call struct {
	system, user string
	temperature  float64
	maxTokens    int
}

type reply struct {
	text string
	err  error
}

// scriptedLLM returns replies in order and records every call.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []reply
	calls   []call
}

func script(replies ...reply) *scriptedLLM { return &scriptedLLM{replies: replies} }

func (s *scriptedLLM) Complete(_ context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{system, user, temperature, maxTokens})
	if len(s.replies) == 0 {
		return "", errors.New("scriptedLLM: no reply left")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.text, r.err
}

func ok(text string) reply { return reply{text: text} }
func fail(err error) reply { return reply{err: err} }
