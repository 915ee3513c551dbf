// Package sources holds the gateways the content pipeline reads from:
//
//	metadata.go    video metadata (Data API v3, or the watch page without a key)
//	transcript.go  transcript fetching (engagement panel, player captions, page scrape)
//	innertube.go   Innertube types and low-level HTTP primitives
//	trends.go      recent posts from Twitter/X used as trend samples
package sources
