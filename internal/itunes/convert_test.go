package itunes

import (
	"encoding/json"
	"testing"
	"time"
)

func decodeResult(t *testing.T, raw string) APIResult {
	t.Helper()
	var r APIResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Failed to decode %s: %v", raw, err)
	}
	return r
}

func TestMapResult_Full(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := decodeResult(t, `{
		"wrapperType": "track",
		"kind": "song",
		"trackId": 111,
		"artistName": "Daft Punk",
		"collectionName": "Random Access Memories",
		"trackName": "Get Lucky",
		"collectionViewUrl": "https://music.apple.com/album/1",
		"trackViewUrl": "https://music.apple.com/track/111",
		"previewUrl": "https://audio.example/111.m4a",
		"artworkUrl30": "a30",
		"artworkUrl60": "a60",
		"artworkUrl100": "a100",
		"collectionPrice": 11.99,
		"trackPrice": 1.29,
		"releaseDate": "2013-04-19T07:00:00Z",
		"collectionExplicitness": "notExplicit",
		"trackExplicitness": "notExplicit",
		"trackCount": 13,
		"trackTimeMillis": 369629,
		"country": "USA",
		"currency": "USD",
		"primaryGenreName": "Dance"
	}`)

	item, ok := MapResult(raw, 7, now)
	if !ok {
		t.Fatal("Expected item to be kept")
	}
	if item.SearchQueryID != 7 || item.TrackID != 111 {
		t.Errorf("Expected owner 7 and trackId 111, got %d and %d", item.SearchQueryID, item.TrackID)
	}
	if item.TrackName != "Get Lucky" || item.ArtistName != "Daft Punk" {
		t.Errorf("Unexpected names %q / %q", item.TrackName, item.ArtistName)
	}
	if item.CollectionPrice != 11.99 || item.TrackPrice != 1.29 {
		t.Errorf("Unexpected prices %v / %v", item.CollectionPrice, item.TrackPrice)
	}
	want := time.Date(2013, 4, 19, 7, 0, 0, 0, time.UTC)
	if !item.ReleaseDate.Equal(want) {
		t.Errorf("Expected release date %v, got %v", want, item.ReleaseDate)
	}
	if item.TrackCount != 13 || item.TrackTimeMillis != 369629 {
		t.Errorf("Unexpected counts %d / %d", item.TrackCount, item.TrackTimeMillis)
	}
	if item.PreviewURL != "https://audio.example/111.m4a" {
		t.Errorf("Unexpected preview url %q", item.PreviewURL)
	}
	if !item.CreatedAt.Equal(now) || !item.UpdatedAt.Equal(now) {
		t.Errorf("Expected timestamps %v, got %v / %v", now, item.CreatedAt, item.UpdatedAt)
	}
}

func TestMapResult_MissingTrackID(t *testing.T) {
	raw := decodeResult(t, `{"wrapperType": "collection", "collectionName": "Discovery"}`)

	item, ok := MapResult(raw, 1, time.Now())
	if ok || item != nil {
		t.Errorf("Expected item without trackId to be dropped, got %+v", item)
	}
}

func TestMapResult_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	raw := decodeResult(t, `{"trackId": 42}`)

	item, ok := MapResult(raw, 1, now)
	if !ok {
		t.Fatal("Expected item to be kept")
	}

	texts := map[string]string{
		"wrapperType":            item.WrapperType,
		"kind":                   item.Kind,
		"artistName":             item.ArtistName,
		"collectionName":         item.CollectionName,
		"trackName":              item.TrackName,
		"collectionViewUrl":      item.CollectionViewURL,
		"trackViewUrl":           item.TrackViewURL,
		"previewUrl":             item.PreviewURL,
		"artworkUrl30":           item.ArtworkURL30,
		"artworkUrl60":           item.ArtworkURL60,
		"artworkUrl100":          item.ArtworkURL100,
		"collectionExplicitness": item.CollectionExplicitness,
		"trackExplicitness":      item.TrackExplicitness,
		"country":                item.Country,
		"currency":               item.Currency,
		"primaryGenreName":       item.PrimaryGenreName,
		"longDescription":        item.LongDescription,
	}
	for name, v := range texts {
		if v != "" {
			t.Errorf("Expected %s to default to empty, got %q", name, v)
		}
	}
	if item.CollectionPrice != 0 || item.TrackPrice != 0 || item.TrackCount != 0 || item.TrackTimeMillis != 0 {
		t.Errorf("Expected numeric defaults of zero, got %+v", item)
	}
	if !item.ReleaseDate.Equal(now) {
		t.Errorf("Expected release date to default to %v, got %v", now, item.ReleaseDate)
	}
}

func TestMapResult_ReleaseDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `{"trackId": 1, "releaseDate": "2001-03-07T08:00:00Z"}`, time.Date(2001, 3, 7, 8, 0, 0, 0, time.UTC)},
		{"date only", `{"trackId": 1, "releaseDate": "2001-03-07"}`, time.Date(2001, 3, 7, 0, 0, 0, 0, time.UTC)},
		{"empty", `{"trackId": 1, "releaseDate": ""}`, now},
		{"garbage", `{"trackId": 1, "releaseDate": "soon"}`, now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := MapResult(decodeResult(t, tt.raw), 1, now)
			if !ok {
				t.Fatal("Expected item to be kept")
			}
			if !item.ReleaseDate.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, item.ReleaseDate)
			}
		})
	}
}

func TestMapResults(t *testing.T) {
	var resp SearchResponse
	body := `{"resultCount": 3, "results": [{"trackId": 111}, {"collectionId": 5}, {"trackId": 222}]}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	items, dropped := MapResults(resp.Results, 9, time.Now())
	if dropped != 1 {
		t.Errorf("Expected 1 dropped, got %d", dropped)
	}
	if len(items) != 2 || items[0].TrackID != 111 || items[1].TrackID != 222 {
		t.Fatalf("Unexpected items %+v", items)
	}
	for _, item := range items {
		if item.SearchQueryID != 9 {
			t.Errorf("Expected owner 9, got %d", item.SearchQueryID)
		}
	}
}
