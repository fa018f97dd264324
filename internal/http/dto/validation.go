package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/itunescache/itunescache/internal/domain"
)

// ParseLimit reads an optional integer parameter. Absent or blank yields nil.
func ParseLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &domain.ValidationError{Field: "limit", Message: "Limit must be an integer"}
	}
	return &n, nil
}

// ParseID reads a positive integer path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "id", Message: "Invalid search ID"}
	}
	return id, nil
}

// ParseTermParam decodes a term taken from a path segment. chi returns the
// escaped segment whenever the request URL carries a RawPath.
func ParseTermParam(raw string, escaped bool) (string, error) {
	if !escaped {
		return raw, nil
	}
	term, err := url.PathUnescape(raw)
	if err != nil {
		return "", &domain.ValidationError{Field: "searchTerm", Message: "Invalid search term encoding"}
	}
	return term, nil
}

// ParseSearchQuery builds a request from GET query parameters.
func ParseSearchQuery(q url.Values) (domain.SearchRequest, error) {
	limit, err := ParseLimit(q.Get("limit"))
	if err != nil {
		return domain.SearchRequest{}, err
	}
	return domain.SearchRequest{
		Term:    q.Get("term"),
		Media:   domain.MediaType(strings.TrimSpace(q.Get("media"))),
		Country: q.Get("country"),
		Limit:   limit,
	}, nil
}
