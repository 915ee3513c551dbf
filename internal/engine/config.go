package engine

import (
	"net/http"
	"time"

	twitter "github.com/anatolykoptev/go-twitter"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMRequestsPerMinute int
	ContentBudgetChars   int // prefix of transcript/description sent to generation calls
	YouTubeAPIKey        string
	TranscriptLangs      []string
	DownloadPath         string
	TempPath             string
	MaxVideoSizeMB       float64
	FileMaxAge           time.Duration
	JanitorInterval      time.Duration
	CacheMaxEntries      int
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient  // nil = watch-page scraping uses HTTPClient
	TwitterClient        *twitter.Client // nil = trend samples disabled
}

// DefaultContentBudget is the number of runes of content forwarded to the LLM.
const DefaultContentBudget = 500

// DefaultMaxVideoSizeMB bounds file_size validation when no limit is given.
const DefaultMaxVideoSizeMB = 500

var cfg = Config{
	ContentBudgetChars: DefaultContentBudget,
	MaxVideoSizeMB:     DefaultMaxVideoSizeMB,
	TranscriptLangs:    []string{"en"},
	HTTPClient:         http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages (sources, workspace).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.ContentBudgetChars <= 0 {
		c.ContentBudgetChars = DefaultContentBudget
	}
	if c.MaxVideoSizeMB <= 0 {
		c.MaxVideoSizeMB = DefaultMaxVideoSizeMB
	}
	if len(c.TranscriptLangs) == 0 {
		c.TranscriptLangs = []string{"en"}
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	cfg = c
	Cfg = &cfg
}
