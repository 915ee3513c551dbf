package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

// Transcript sources, tried in order:
//  1. watch page ytInitialPlayerResponse → caption XML (works from any IP)
//  2. /next → engagement panel → /get_transcript (works from datacenter IPs)
//  3. ANDROID Innertube /player → captionTracks (non-blocked IPs)

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// /next returns the params URL-encoded; /get_transcript wants raw base64.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments joins the text runs of a /get_transcript response.
func parseTranscriptSegments(resp transcriptPanelResp) string {
	var sb strings.Builder
	for _, a := range resp.Actions {
		if a.Panel == nil {
			continue
		}
		for _, seg := range a.Panel.segments() {
			for _, run := range seg.Snippet.Runs {
				appendSpaced(&sb, strings.TrimSpace(run.Text))
			}
		}
	}
	return sb.String()
}

func appendSpaced(sb *strings.Builder, s string) {
	if s == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(s)
}

func fetchTranscriptViaEngagementPanel(ctx context.Context, videoID string) (string, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client":  ytWebClient(visitorData),
			"user":    map[string]bool{"enableSafetyMode": false},
			"request": map[string]bool{"useSsl": true},
		},
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTubeWEB(ctx, ytGetTranscriptURL, map[string]any{
		"params":  token,
		"context": map[string]any{"client": ytWebClient(visitorData)},
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp transcriptPanelResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	text := parseTranscriptSegments(transcriptResp)
	if text == "" {
		return "", errors.New("empty transcript segments")
	}
	return text, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then the first track.
// PoToken tracks are unusable.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	var (
		best      captionTrack
		bestScore = -1
	)
	for _, t := range tracks {
		if needsPoToken(t.BaseURL) {
			continue
		}
		if score := trackScore(t, langs); bestScore < 0 || score < bestScore {
			best, bestScore = t, score
		}
	}
	return best, bestScore >= 0
}

// trackScore ranks a track for pickBestTrack; lower is better.
func trackScore(t captionTrack, langs []string) int {
	n := len(langs)
	for i, lang := range langs {
		if t.LanguageCode != lang {
			continue
		}
		if t.Kind == "asr" {
			return n + i
		}
		return i
	}
	if strings.HasPrefix(t.LanguageCode, "en") {
		return 2 * n
	}
	return 2*n + 1
}

func tracksOf(pr *innertubePlayerResp) ([]captionTrack, error) {
	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", pr.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

// parseTimedText flattens timedtext XML into one line of caption text.
func parseTimedText(body []byte) (string, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}
	var sb strings.Builder
	for _, line := range tt.Lines {
		appendSpaced(&sb, cleanCaptionLine(line.Text))
	}
	if sb.Len() == 0 {
		return "", errors.New("empty timedtext")
	}
	return sb.String(), nil
}

// cleanCaptionLine turns one caption line into plain text. Lines arrive
// double-escaped and may carry <font> styling.
func cleanCaptionLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		md = html.UnescapeString(engine.CleanHTML(s))
	}
	return collapseSpace(md)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func fetchTranscriptViaPlayer(ctx context.Context, videoID string, langs []string) (string, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return "", err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var pr innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode player: %w", err)
	}
	return timedTextFor(ctx, &pr, langs)
}

func fetchTranscriptViaPageScrape(ctx context.Context, videoID string, langs []string) (string, error) {
	page, err := fetchWatchPage(ctx, videoID)
	if err != nil {
		return "", err
	}
	pr, err := extractPlayerResponse(page)
	if err != nil {
		return "", err
	}
	return timedTextFor(ctx, pr, langs)
}

// timedTextFor downloads the best caption track of a player response.
func timedTextFor(ctx context.Context, pr *innertubePlayerResp, langs []string) (string, error) {
	tracks, err := tracksOf(pr)
	if err != nil {
		return "", err
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// FetchTranscript returns the caption text of a video. When every source
// fails the error is a *engine.DependencyError wrapping engine.ErrTranscriptUnavailable.
func FetchTranscript(ctx context.Context, videoID string, langs []string) (string, error) {
	engine.IncrTranscriptRequest()
	if len(langs) == 0 {
		langs = engine.Cfg.TranscriptLangs
	}

	chain := []struct {
		name  string
		fetch func() (string, error)
	}{
		{"page scrape", func() (string, error) { return fetchTranscriptViaPageScrape(ctx, videoID, langs) }},
		{"engagement panel", func() (string, error) { return fetchTranscriptViaEngagementPanel(ctx, videoID) }},
		{"player", func() (string, error) { return fetchTranscriptViaPlayer(ctx, videoID, langs) }},
	}

	var errs []error
	for _, src := range chain {
		text, err := src.fetch()
		if err == nil {
			return text, nil
		}
		slog.Warn("transcript: source failed", slog.String("source", src.name),
			slog.String("id", videoID), slog.Any("error", err))
		errs = append(errs, fmt.Errorf("%s: %w", src.name, err))
	}

	engine.IncrTranscriptError()
	return "", &engine.DependencyError{
		Source: "transcript",
		Err:    fmt.Errorf("%w: %v", engine.ErrTranscriptUnavailable, errors.Join(errs...)),
	}
}
