package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/itunescache/itunescache/internal/domain"
)

// SearchBody is the JSON body accepted by POST /api/itunes/search.
type SearchBody struct {
	Limit   *int   `json:"limit,omitempty"`
	Term    string `json:"term"`
	Media   string `json:"media,omitempty"`
	Country string `json:"country,omitempty"`
}

func (b SearchBody) ToDomain() domain.SearchRequest {
	return domain.SearchRequest{
		Term:    b.Term,
		Media:   domain.MediaType(b.Media),
		Country: b.Country,
		Limit:   b.Limit,
	}
}

// DecodeSearchBody reads at most maxBytes of JSON from r.
func DecodeSearchBody(r io.Reader, maxBytes int64) (domain.SearchRequest, error) {
	var body SearchBody
	dec := json.NewDecoder(io.LimitReader(r, maxBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.SearchRequest{}, &domain.ValidationError{Field: "body", Message: "Request body is required"}
		}
		return domain.SearchRequest{}, &domain.ValidationError{Field: "body", Message: fmt.Sprintf("Invalid JSON body: %v", err)}
	}
	return body.ToDomain(), nil
}
