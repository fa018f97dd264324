package domain

import (
	"fmt"
)

// ValidationError reports bad client input. It is raised before any I/O.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a lookup miss by id or term.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NetworkError wraps any failure talking to the upstream search API:
// transport errors, timeouts, non-2xx statuses and undecodable bodies.
type NetworkError struct {
	Err        error
	Op         string
	Message    string
	StatusCode int
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a single item that could not be stored.
// It never aborts the surrounding search.
type PersistenceError struct {
	Err     error
	TrackID int64
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist item with trackId %d: %v", e.TrackID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
