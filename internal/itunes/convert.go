package itunes

import (
	"time"

	"github.com/itunescache/itunescache/internal/domain"
)

// MapResult converts raw into a row owned by ownerID. It reports false when
// raw has no trackId. Missing fields get zero values, except releaseDate
// which falls back to now.
func MapResult(raw APIResult, ownerID int64, now time.Time) (*domain.SearchResultItem, bool) {
	if raw.TrackID == nil {
		return nil, false
	}

	return &domain.SearchResultItem{
		SearchQueryID:          ownerID,
		TrackID:                *raw.TrackID,
		WrapperType:            str(raw.WrapperType),
		Kind:                   str(raw.Kind),
		ArtistName:             str(raw.ArtistName),
		CollectionName:         str(raw.CollectionName),
		TrackName:              str(raw.TrackName),
		CollectionViewURL:      str(raw.CollectionViewURL),
		TrackViewURL:           str(raw.TrackViewURL),
		PreviewURL:             str(raw.PreviewURL),
		ArtworkURL30:           str(raw.ArtworkURL30),
		ArtworkURL60:           str(raw.ArtworkURL60),
		ArtworkURL100:          str(raw.ArtworkURL100),
		CollectionPrice:        num(raw.CollectionPrice),
		TrackPrice:             num(raw.TrackPrice),
		ReleaseDate:            releaseDate(raw.ReleaseDate, now),
		CollectionExplicitness: str(raw.CollectionExplicitness),
		TrackExplicitness:      str(raw.TrackExplicitness),
		TrackCount:             num(raw.TrackCount),
		TrackTimeMillis:        num(raw.TrackTimeMillis),
		Country:                str(raw.Country),
		Currency:               str(raw.Currency),
		PrimaryGenreName:       str(raw.PrimaryGenreName),
		LongDescription:        str(raw.LongDescription),
		CreatedAt:              now,
		UpdatedAt:              now,
	}, true
}

// MapResults maps every raw item, returning the kept rows in upstream order
// and the number dropped for lacking a trackId.
func MapResults(raw []APIResult, ownerID int64, now time.Time) (items []*domain.SearchResultItem, dropped int) {
	items = make([]*domain.SearchResultItem, 0, len(raw))
	for _, r := range raw {
		item, ok := MapResult(r, ownerID, now)
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num[T int | int64 | float64](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

var releaseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

func releaseDate(p *string, now time.Time) time.Time {
	if p == nil || *p == "" {
		return now
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, *p); err == nil {
			return t.UTC()
		}
	}
	return now
}
