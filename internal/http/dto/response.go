package dto

import (
	"fmt"
	"net/http"

	"github.com/itunescache/itunescache/internal/domain"
)

// SuccessResponse is the envelope for every successful read.
type SuccessResponse struct {
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// EmptySearchResponse mirrors the upstream payload for a search with no hits.
type EmptySearchResponse struct {
	Results     []any `json:"results"`
	ResultCount int   `json:"resultCount"`
}

type ErrorResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
}

func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	}
}

func success(data any, message string, count *int) SuccessResponse {
	return SuccessResponse{Success: true, Data: data, Message: message, Count: count}
}

func intPtr(v int) *int { return &v }

// NewSearchResponse renders a search outcome. An empty outcome uses the
// upstream-shaped empty envelope.
func NewSearchResponse(out domain.Outcome) any {
	switch out.Kind {
	case domain.OutcomeEmpty:
		return EmptySearchResponse{ResultCount: 0, Results: []any{}}
	default:
		q := out.Query
		return success(q, fmt.Sprintf("Found %d results for %q", q.ResultCount, q.Term), intPtr(q.ResultCount))
	}
}

func NewHistoryResponse(entries []domain.HistoryEntry) SuccessResponse {
	return success(entries, fmt.Sprintf("Found %d search terms in history", len(entries)), nil)
}

func NewSearchesResponse(queries []*domain.SearchQuery) SuccessResponse {
	return success(queries, fmt.Sprintf("Found %d searches with all results", len(queries)), intPtr(len(queries)))
}

func NewSearchByIDResponse(q *domain.SearchQuery) SuccessResponse {
	return success(q, fmt.Sprintf("Found search with %d results", q.ResultCount), intPtr(q.ResultCount))
}

func NewResultsByTermResponse(term string, queries []*domain.SearchQuery) SuccessResponse {
	total := 0
	for _, q := range queries {
		total += q.ResultCount
	}
	return success(queries,
		fmt.Sprintf("Found %d searches with total %d results for %q", len(queries), total, term),
		intPtr(len(queries)))
}

func NewDeleteResponse(id int64) SuccessResponse {
	return success(map[string]int64{"id": id}, fmt.Sprintf("Deleted search %d", id), nil)
}
