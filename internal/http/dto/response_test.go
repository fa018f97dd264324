package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/itunescache/itunescache/internal/domain"
)

func TestNewSearchResponse_Empty(t *testing.T) {
	out := domain.NewOutcome(&domain.SearchQuery{Term: "zzz"}, domain.SourceUpstream)

	data, err := json.Marshal(NewSearchResponse(out))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"results":[],"resultCount":0}` {
		t.Errorf("Unexpected empty envelope %s", data)
	}
}

func TestNewSearchResponse_Results(t *testing.T) {
	q := &domain.SearchQuery{ID: 1, Term: "daft punk", ResultCount: 2, Results: []*domain.SearchResultItem{{TrackID: 111}, {TrackID: 222}}}
	resp, ok := NewSearchResponse(domain.NewOutcome(q, domain.SourceCache)).(SuccessResponse)
	if !ok {
		t.Fatal("Expected a SuccessResponse")
	}
	if !resp.Success || resp.Count == nil || *resp.Count != 2 {
		t.Errorf("Unexpected envelope %+v", resp)
	}
	if resp.Message != `Found 2 results for "daft punk"` {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestNewResultsByTermResponse(t *testing.T) {
	queries := []*domain.SearchQuery{{ResultCount: 3}, {ResultCount: 4}}
	resp := NewResultsByTermResponse("x", queries)
	if *resp.Count != 2 {
		t.Errorf("Expected count 2, got %d", *resp.Count)
	}
	if resp.Message != `Found 2 searches with total 7 results for "x"` {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestNewHistoryResponse_OmitsCount(t *testing.T) {
	data, err := json.Marshal(NewHistoryResponse([]domain.HistoryEntry{{SearchTerm: "a", Count: 1}}))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := m["count"]; ok {
		t.Errorf("Expected no count field, got %s", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(http.StatusNotFound, "Search not found")
	if resp.StatusCode != 404 || resp.Error != "Not Found" || resp.Message != "Search not found" {
		t.Errorf("Unexpected error response %+v", resp)
	}
}
