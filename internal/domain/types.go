package domain

import (
	"fmt"
	"strings"

	"github.com/itunescache/itunescache/internal/constants"
)

type MediaType string

const (
	MediaMovie      MediaType = constants.MediaMovie
	MediaPodcast    MediaType = constants.MediaPodcast
	MediaMusic      MediaType = constants.MediaMusic
	MediaMusicVideo MediaType = constants.MediaMusicVideo
	MediaAudiobook  MediaType = constants.MediaAudiobook
	MediaShortFilm  MediaType = constants.MediaShortFilm
	MediaTVShow     MediaType = constants.MediaTVShow
	MediaSoftware   MediaType = constants.MediaSoftware
	MediaEbook      MediaType = constants.MediaEbook
	MediaAll        MediaType = constants.MediaAll
)

var validMedia = map[MediaType]bool{
	MediaMovie:      true,
	MediaPodcast:    true,
	MediaMusic:      true,
	MediaMusicVideo: true,
	MediaAudiobook:  true,
	MediaShortFilm:  true,
	MediaTVShow:     true,
	MediaSoftware:   true,
	MediaEbook:      true,
	MediaAll:        true,
}

// Valid reports whether m is one of the upstream media categories.
func (m MediaType) Valid() bool {
	return validMedia[m]
}

// CachePolicy decides what a repeat search for a known term does.
type CachePolicy string

const (
	// PolicyFirstWriteWins returns the stored record unchanged without calling upstream.
	PolicyFirstWriteWins CachePolicy = constants.CachePolicyFirstWriteWins
	// PolicyAlwaysRefresh re-fetches and replaces the stored items on every search.
	PolicyAlwaysRefresh CachePolicy = constants.CachePolicyAlwaysRefresh
)

func ParseCachePolicy(s string) (CachePolicy, error) {
	switch CachePolicy(s) {
	case PolicyFirstWriteWins, PolicyAlwaysRefresh:
		return CachePolicy(s), nil
	case "":
		return PolicyFirstWriteWins, nil
	default:
		return "", fmt.Errorf("unknown cache policy %q", s)
	}
}

// SearchRequest is a client search before defaults are applied.
// A nil Limit means the caller did not supply one.
type SearchRequest struct {
	Limit   *int      `json:"limit,omitempty"`
	Term    string    `json:"term"`
	Media   MediaType `json:"media,omitempty"`
	Country string    `json:"country,omitempty"`
}

// Normalize applies defaults and validates the request. It performs no I/O.
func (r SearchRequest) Normalize(defaultCountry string) (SearchRequest, error) {
	out := SearchRequest{
		Term:    strings.TrimSpace(r.Term),
		Media:   r.Media,
		Country: strings.TrimSpace(r.Country),
	}

	if out.Term == "" {
		return SearchRequest{}, &ValidationError{Field: "term", Message: "Search term is required"}
	}

	if out.Media == "" {
		out.Media = MediaAll
	}
	if !out.Media.Valid() {
		return SearchRequest{}, &ValidationError{Field: "media", Message: fmt.Sprintf("unsupported media type %q", r.Media)}
	}

	if out.Country == "" {
		out.Country = defaultCountry
	}

	limit := constants.DefaultSearchLimit
	if r.Limit != nil {
		limit = *r.Limit
	}
	if limit < constants.MinSearchLimit || limit > constants.MaxSearchLimit {
		return SearchRequest{}, &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("Limit must be between %d and %d", constants.MinSearchLimit, constants.MaxSearchLimit),
		}
	}
	out.Limit = &limit

	return out, nil
}

type OutcomeKind int

const (
	// OutcomeResults carries a stored query with at least one item.
	OutcomeResults OutcomeKind = iota + 1
	// OutcomeEmpty means the upstream had nothing for the term.
	OutcomeEmpty
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResults:
		return "results"
	case OutcomeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
)

// Outcome is the result of a successful search. Failures are reported as errors.
type Outcome struct {
	Query  *SearchQuery
	Source Source
	Kind   OutcomeKind
}

// NewOutcome tags q as results or empty based on its result count.
func NewOutcome(q *SearchQuery, src Source) Outcome {
	kind := OutcomeResults
	if q.IsEmpty() {
		kind = OutcomeEmpty
	}
	return Outcome{Kind: kind, Query: q, Source: src}
}
