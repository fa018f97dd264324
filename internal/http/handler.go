package httpapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/http/dto"
	"github.com/itunescache/itunescache/internal/logger"
)

const maxBodyBytes = 1 << 20

// SearchService is the search cache as seen by the HTTP layer.
type SearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.Outcome, error)
	History(ctx context.Context) ([]domain.HistoryEntry, error)
	ListAll(ctx context.Context) ([]*domain.SearchQuery, error)
	GetByID(ctx context.Context, id int64) (*domain.SearchQuery, error)
	ListByTerm(ctx context.Context, term string) ([]*domain.SearchQuery, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Service SearchService
	DB      Pinger
	Logger  *logger.Logger
}

func NewHandler(svc SearchService, db Pinger, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Service: svc,
		DB:      db,
		Logger:  log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/itunes", func(r chi.Router) {
		r.Get("/search", h.SearchByQuery)
		r.Post("/search", h.SearchByBody)
		r.Get("/search/{id}", h.GetSearch)
		r.Delete("/search/{id}", h.DeleteSearch)
		r.Get("/history", h.History)
		r.Get("/searches", h.ListSearches)
		r.Get("/results/{searchTerm}", h.ResultsByTerm)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.NewErrorResponse(status, message))
}

// writeServiceError maps domain errors to HTTP statuses. prefix is used for
// unexpected failures only.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	var (
		vErr  *domain.ValidationError
		nfErr *domain.NotFoundError
		nErr  *domain.NetworkError
	)
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &nfErr):
		writeError(w, http.StatusNotFound, "Search not found")
	case errors.As(err, &nErr):
		writeError(w, http.StatusInternalServerError, "Search failed: "+nErr.Error())
	default:
		h.Logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, prefix+": "+err.Error())
	}
}
