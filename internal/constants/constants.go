// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort           = "8080"
	DefaultDBPath         = "itunescache.db"
	DefaultITunesURL      = "https://itunes.apple.com/search"
	DefaultCountry        = "US"
	DefaultCachePolicy    = CachePolicyFirstWriteWins
	UpstreamTimeout       = 10 * time.Second
	ShutdownTimeout       = 5 * time.Second
	ReadHeaderTimeout     = 5 * time.Second
	TelemetryInitTimeout  = 5 * time.Second
	MaxUpstreamBodyBytes  = 16 << 20
	DefaultUserAgent      = "itunescache/1.0"
	DefaultTracingService = "itunescache"
)

// Search limits
const (
	DefaultSearchLimit = 50
	MinSearchLimit     = 1
	MaxSearchLimit     = 200
)

// Cache policies
const (
	CachePolicyFirstWriteWins = "first-write-wins"
	CachePolicyAlwaysRefresh  = "always-refresh"
)

// Media types accepted by the upstream search endpoint
const (
	MediaMovie      = "movie"
	MediaPodcast    = "podcast"
	MediaMusic      = "music"
	MediaMusicVideo = "musicVideo"
	MediaAudiobook  = "audiobook"
	MediaShortFilm  = "shortFilm"
	MediaTVShow     = "tvShow"
	MediaSoftware   = "software"
	MediaEbook      = "ebook"
	MediaAll        = "all"
)

// Database
const (
	QueriesTable = "search_queries"
	ItemsTable   = "search_result_items"
)

// MIME Types
const (
	MimeTypeJSON = "application/json"
)
