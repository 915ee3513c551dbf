// go_ytcontent: YouTube content studio MCP server.
//
// Resolves and validates video references, fetches metadata and transcripts,
// and turns them into hashtags and per-platform social posts with an LLM.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	twitter "github.com/anatolykoptev/go-twitter"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/content"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/history"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/sources"
	"github.com/anatolykoptev/go_ytcontent/internal/engine/workspace"
	"github.com/anatolykoptev/go_ytcontent/internal/ytserver"
)

var version = "dev"

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()
	initLogger()

	mcpPort := env.Str("MCP_PORT", "8892")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := initEngine()
	tools, closeHistory := initTools(ctx, c)
	defer closeHistory()
	startJanitor(ctx, c)

	slog.Info("starting go_ytcontent", slog.String("port", mcpPort))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytcontent",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server, tools)
	slog.Info("tools registered", slog.Int("count", ytserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytcontent",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initLogger() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(env.Str("LOG_FORMAT", "text"), "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func initEngine() engine.Config {
	c := engine.Config{
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 4096),
		LLMRequestsPerMinute: env.Int("LLM_RPM", 60),
		ContentBudgetChars:   env.Int("CONTENT_BUDGET_CHARS", engine.DefaultContentBudget),
		YouTubeAPIKey:        env.Str("YOUTUBE_API_KEY", ""),
		TranscriptLangs:      env.List("TRANSCRIPT_LANGS", "en"),
		DownloadPath:         env.Str("DOWNLOAD_PATH", "downloads"),
		TempPath:             env.Str("TEMP_PATH", "temp"),
		MaxVideoSizeMB:       env.Float("MAX_VIDEO_SIZE_MB", engine.DefaultMaxVideoSizeMB),
		FileMaxAge:           env.Duration("FILE_MAX_AGE", 24*time.Hour),
		JanitorInterval:      env.Duration("JANITOR_INTERVAL", time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.BrowserClient = newBrowserClient(env.Str("WEBSHARE_API_KEY", ""))
	c.TwitterClient = newTwitterClient(env.Str("TWITTER_ACCOUNTS", ""))

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries)
	return *engine.Cfg
}

// newBrowserClient builds the stealth client for watch-page fetches, routed
// through the Webshare pool when apiKey is set. nil falls back to HTTPClient.
func newBrowserClient(apiKey string) *engine.BrowserClient {
	opts := []stealth.ClientOption{stealth.WithTimeout(15)}
	if apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
		return nil
	}
	slog.Info("stealth browser client initialized")
	return bc
}

// newTwitterClient builds the client behind trending_topics samples.
// Without accounts it runs on guest sessions. nil disables samples.
func newTwitterClient(rawAccounts string) *twitter.Client {
	accounts := twitter.ParseAccounts(rawAccounts)
	openCount := 0
	if len(accounts) == 0 {
		openCount = 2
	}
	tw, err := twitter.NewClient(twitter.ClientConfig{
		Accounts:         accounts,
		OpenAccountCount: openCount,
	})
	if err != nil {
		slog.Warn("twitter client init failed, trend samples disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("twitter client ready", slog.Int("pool_size", tw.Pool().Size()))
	return tw
}

func initTools(ctx context.Context, c engine.Config) (*ytserver.Tools, func()) {
	llm := engine.NewLLMFromConfig(c)
	temp := content.WithTemperature(c.LLMTemperature)
	gen, err := content.NewGenerator(llm, content.WithContentBudget(c.ContentBudgetChars), temp)
	if err != nil {
		slog.Error("generator init failed", slog.Any("error", err))
		os.Exit(1)
	}

	meta, err := sources.NewMetadata(ctx, c.YouTubeAPIKey)
	if err != nil {
		slog.Error("metadata init failed", slog.Any("error", err))
		os.Exit(1)
	}
	if c.YouTubeAPIKey == "" {
		slog.Info("metadata: no YOUTUBE_API_KEY, using watch pages")
	}

	tools := &ytserver.Tools{
		Generator:   gen,
		Analyzer:    content.NewAnalyzer(llm, temp),
		Metadata:    meta,
		Transcripts: sources.FetchTranscript,
		Trends:      sources.SampleTrendTweets,
	}

	store := openHistory(ctx)
	if store == nil {
		return tools, func() {}
	}
	tools.History = store
	return tools, func() {
		if err := store.Close(); err != nil {
			slog.Warn("history close failed", slog.Any("error", err))
		}
	}
}

// openHistory prefers Postgres when DATABASE_URL is set and falls back to
// a local SQLite file. nil disables history.
func openHistory(ctx context.Context) history.Store {
	if dbURL := env.Str("DATABASE_URL", ""); dbURL != "" {
		pg, err := history.ConnectPostgres(ctx, dbURL)
		if err == nil {
			slog.Info("history: postgres connected")
			return pg
		}
		slog.Warn("history: postgres init failed, using sqlite", slog.Any("error", err))
	}

	path := env.Str("HISTORY_DB_PATH", "data/history.db")
	db, err := history.OpenSQLite(path)
	if err != nil {
		slog.Warn("history: sqlite init failed, history disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("history: sqlite ready", slog.String("path", path))
	return db
}

func startJanitor(ctx context.Context, c engine.Config) {
	var dirs []string
	for _, p := range []string{c.DownloadPath, c.TempPath} {
		dir, err := workspace.EnsureDir(p)
		if err != nil {
			slog.Warn("workspace: directory unavailable", slog.String("path", p), slog.Any("error", err))
			continue
		}
		dirs = append(dirs, dir)
	}
	j := &workspace.Janitor{Dirs: dirs, MaxAge: c.FileMaxAge, Interval: c.JanitorInterval}
	go j.Run(ctx)
}
