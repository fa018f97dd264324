package itunes

// SearchResponse is the body returned by the iTunes search endpoint.
type SearchResponse struct {
	Results     []APIResult `json:"results"`
	ResultCount int         `json:"resultCount"`
}

// APIResult is one heterogeneous item from the upstream payload. Every
// field is optional; pointers distinguish absent from zero.
type APIResult struct {
	TrackID                *int64   `json:"trackId"`
	WrapperType            *string  `json:"wrapperType"`
	Kind                   *string  `json:"kind"`
	ArtistName             *string  `json:"artistName"`
	CollectionName         *string  `json:"collectionName"`
	TrackName              *string  `json:"trackName"`
	CollectionViewURL      *string  `json:"collectionViewUrl"`
	TrackViewURL           *string  `json:"trackViewUrl"`
	PreviewURL             *string  `json:"previewUrl"`
	ArtworkURL30           *string  `json:"artworkUrl30"`
	ArtworkURL60           *string  `json:"artworkUrl60"`
	ArtworkURL100          *string  `json:"artworkUrl100"`
	CollectionPrice        *float64 `json:"collectionPrice"`
	TrackPrice             *float64 `json:"trackPrice"`
	ReleaseDate            *string  `json:"releaseDate"`
	CollectionExplicitness *string  `json:"collectionExplicitness"`
	TrackExplicitness      *string  `json:"trackExplicitness"`
	TrackCount             *int     `json:"trackCount"`
	TrackTimeMillis        *int64   `json:"trackTimeMillis"`
	Country                *string  `json:"country"`
	Currency               *string  `json:"currency"`
	PrimaryGenreName       *string  `json:"primaryGenreName"`
	LongDescription        *string  `json:"longDescription"`
}
