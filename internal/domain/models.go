package domain

import (
	"time"
)

// SearchQuery is one distinct search term observed by the service together
// with the result rows persisted for it.
type SearchQuery struct {
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`
	Term        string              `json:"searchTerm" db:"term"`
	Results     []*SearchResultItem `json:"results" db:"-"`
	ID          int64               `json:"id" db:"id"`
	Limit       int                 `json:"limit" db:"result_limit"`
	ResultCount int                 `json:"resultCount" db:"result_count"`
}

// SearchResultItem is one media item returned by the upstream for a SearchQuery.
type SearchResultItem struct { //nolint:govet // field ordering follows the upstream payload
	ID                     int64     `json:"id" db:"id"`
	SearchQueryID          int64     `json:"searchQueryId" db:"search_query_id"`
	TrackID                int64     `json:"trackId" db:"track_id"`
	WrapperType            string    `json:"wrapperType" db:"wrapper_type"`
	Kind                   string    `json:"kind" db:"kind"`
	ArtistName             string    `json:"artistName" db:"artist_name"`
	CollectionName         string    `json:"collectionName" db:"collection_name"`
	TrackName              string    `json:"trackName" db:"track_name"`
	CollectionViewURL      string    `json:"collectionViewUrl" db:"collection_view_url"`
	TrackViewURL           string    `json:"trackViewUrl" db:"track_view_url"`
	PreviewURL             string    `json:"previewUrl" db:"preview_url"`
	ArtworkURL30           string    `json:"artworkUrl30" db:"artwork_url30"`
	ArtworkURL60           string    `json:"artworkUrl60" db:"artwork_url60"`
	ArtworkURL100          string    `json:"artworkUrl100" db:"artwork_url100"`
	CollectionPrice        float64   `json:"collectionPrice" db:"collection_price"`
	TrackPrice             float64   `json:"trackPrice" db:"track_price"`
	ReleaseDate            time.Time `json:"releaseDate" db:"release_date"`
	CollectionExplicitness string    `json:"collectionExplicitness" db:"collection_explicitness"`
	TrackExplicitness      string    `json:"trackExplicitness" db:"track_explicitness"`
	TrackCount             int       `json:"trackCount" db:"track_count"`
	TrackTimeMillis        int64     `json:"trackTimeMillis" db:"track_time_millis"`
	Country                string    `json:"country" db:"country"`
	Currency               string    `json:"currency" db:"currency"`
	PrimaryGenreName       string    `json:"primaryGenreName" db:"primary_genre_name"`
	LongDescription        string    `json:"longDescription" db:"long_description"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

// HistoryEntry is the compact view of a SearchQuery used by the history listing.
type HistoryEntry struct {
	SearchTerm string `json:"searchTerm" db:"term"`
	Count      int    `json:"count" db:"result_count"`
}

// IsEmpty reports whether the query has no persisted results.
func (q *SearchQuery) IsEmpty() bool {
	return q.ResultCount == 0
}
