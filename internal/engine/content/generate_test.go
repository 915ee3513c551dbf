package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/ytref"
)

var testRef = ytref.Resolve("https://youtu.be/dQw4w9WgXcQ")

func newTestGenerator(t *testing.T, llm Completer, opts ...Option) *Generator {
	t.Helper()
	g, err := NewGenerator(llm, opts...)
	require.NoError(t, err)
	return g
}

func TestGeneratePlatformContent(t *testing.T) {
	llm := script(
		ok("youtube, #Tutorial ,  ContentCreator"),
		ok(`{"post": "Short tweet #youtube"}`),
		ok("Here is your caption:\n```json\n{\"post\": \"Long caption ✨\"}\n```"),
	)
	g := newTestGenerator(t, llm)

	body := strings.Repeat("lorem ipsum ", 400)
	res, err := g.GeneratePlatformContent(context.Background(), testRef, body, []string{"Twitter", "Instagram", "UnknownPlatform"})
	require.NoError(t, err)

	assert.Equal(t, []string{"#youtube", "#Tutorial", "#ContentCreator"}, res.Hashtags)
	assert.Len(t, res.Posts, 2)
	assert.Equal(t, []string{"Twitter", "Instagram"}, res.Platforms)
	assert.Equal(t, "Short tweet #youtube", res.Posts["Twitter"])
	assert.Equal(t, "Long caption ✨", res.Posts["Instagram"])
	_, found := res.Post("UnknownPlatform")
	assert.False(t, found)
	assert.Equal(t, "dQw4w9WgXcQ", res.VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", res.VideoLink)

	assert.LessOrEqual(t, len(res.Hashtags), MaxHashtags)
	for _, h := range res.Hashtags {
		assert.True(t, strings.HasPrefix(h, "#"))
		assert.Greater(t, len(h), 1)
	}

	// Hashtags first, then one call per known platform.
	require.Len(t, llm.calls, 3)
	assert.Equal(t, hashtagSystem, llm.calls[0].system)
	assert.Contains(t, llm.calls[1].user, "Twitter")
	assert.Contains(t, llm.calls[1].user, "280")
	assert.Contains(t, llm.calls[1].user, res.VideoLink)
	assert.Contains(t, llm.calls[1].user, "#youtube #Tutorial #ContentCreator")
	assert.Contains(t, llm.calls[2].user, "Instagram")
	assert.Contains(t, llm.calls[2].user, "2200")
}

func TestGenerateInvalidReference(t *testing.T) {
	llm := script()
	g := newTestGenerator(t, llm)

	_, err := g.GeneratePlatformContent(context.Background(), ytref.Resolve("not a video"), "body", []string{"Twitter"})
	require.ErrorIs(t, err, engine.ErrInvalidReference)
	assert.Empty(t, llm.calls, "no service call before the reference is checked")
}

func TestGenerateContentBudget(t *testing.T) {
	llm := script(ok("#a1, #b2"), ok(`{"post":"x"}`))
	g := newTestGenerator(t, llm, WithContentBudget(50))

	body := strings.Repeat("a", 50) + "TAILMARKER"
	_, err := g.GeneratePlatformContent(context.Background(), testRef, body, []string{"Twitter"})
	require.NoError(t, err)

	for _, c := range llm.calls {
		assert.NotContains(t, c.user, "TAILMARKER")
	}
}

func TestGenerateNoLocalTruncation(t *testing.T) {
	long := strings.Repeat("x", 1000)
	llm := script(ok("#a1"), ok(`{"post":"`+long+`"}`))
	g := newTestGenerator(t, llm)

	res, err := g.GeneratePlatformContent(context.Background(), testRef, "body", []string{"Twitter"})
	require.NoError(t, err)
	assert.Len(t, res.Posts["Twitter"], 1000)
}

func TestGeneratePlatformLookup(t *testing.T) {
	llm := script(ok("#a1"), ok(`{"post":"t"}`), ok(`{"post":"l"}`))
	g := newTestGenerator(t, llm)

	res, err := g.GeneratePlatformContent(context.Background(), testRef, "body", []string{"twitter", "TWITTER", " LinkedIn "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Twitter", "LinkedIn"}, res.Platforms)
	assert.Len(t, llm.calls, 3)
}

func TestGenerateOnlyUnknownPlatforms(t *testing.T) {
	llm := script(ok("#a1, #b2"))
	g := newTestGenerator(t, llm)

	res, err := g.GeneratePlatformContent(context.Background(), testRef, "body", []string{"MySpace"})
	require.NoError(t, err)
	assert.Empty(t, res.Posts)
	assert.Equal(t, []string{"#a1", "#b2"}, res.Hashtags)
}

func TestGenerateFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	tests := []struct {
		name      string
		replies   []reply
		wantOp    string
		malformed bool
		wantCalls int
	}{
		{"hashtag call fails", []reply{fail(boom)}, "hashtags", false, 1},
		{"hashtags empty", []reply{ok(" , # , ")}, "hashtags", true, 1},
		{"post call fails", []reply{ok("#a1"), fail(boom)}, "post Twitter", false, 2},
		{"post not json", []reply{ok("#a1"), ok("Sure, here is a tweet!")}, "post Twitter", true, 2},
		{"post field missing", []reply{ok("#a1"), ok(`{"text":"hi"}`)}, "post Twitter", true, 2},
		{"post wrong type", []reply{ok("#a1"), ok(`{"post": 7}`)}, "post Twitter", true, 2},
		{"second platform fails", []reply{ok("#a1"), ok(`{"post":"t"}`), fail(boom)}, "post Instagram", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := script(tt.replies...)
			g := newTestGenerator(t, llm)

			res, err := g.GeneratePlatformContent(context.Background(), testRef, "body", []string{"Twitter", "Instagram"})
			require.Error(t, err)
			assert.Nil(t, res, "partial results must not be returned")

			var ge *engine.GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, tt.wantOp, ge.Op)

			var mr *engine.MalformedResponseError
			assert.Equal(t, tt.malformed, errors.As(err, &mr))
			if !tt.malformed {
				assert.ErrorIs(t, err, boom)
			}
			assert.Len(t, llm.calls, tt.wantCalls)
		})
	}
}

func TestNewGeneratorValidatesTable(t *testing.T) {
	tests := []struct {
		name  string
		specs []PlatformSpec
	}{
		{"empty", nil},
		{"blank name", []PlatformSpec{{Name: " ", MaxLength: 10, Style: "s"}}},
		{"zero length", []PlatformSpec{{Name: "X", MaxLength: 0, Style: "s"}}},
		{"no style", []PlatformSpec{{Name: "X", MaxLength: 10}}},
		{"duplicate", []PlatformSpec{{Name: "X", MaxLength: 10, Style: "s"}, {Name: "x", MaxLength: 20, Style: "s"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(script(), WithPlatforms(tt.specs))
			assert.Error(t, err)
		})
	}

	_, err := NewGenerator(nil)
	assert.Error(t, err)

	g, err := NewGenerator(script())
	require.NoError(t, err)
	assert.Equal(t, []string{"Twitter", "Instagram", "LinkedIn", "Facebook"}, g.Platforms())
}

func TestGenerateTemperatureOption(t *testing.T) {
	llm := script(ok("#a1"), ok(`{"post":"x"}`))
	g := newTestGenerator(t, llm, WithTemperature(0.2))

	_, err := g.GeneratePlatformContent(context.Background(), testRef, "body", []string{"Facebook"})
	require.NoError(t, err)
	for _, c := range llm.calls {
		assert.InDelta(t, 0.2, c.temperature, 1e-9)
	}
}
