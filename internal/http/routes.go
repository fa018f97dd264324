package httpapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/http/dto"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			h.Logger.Error("Health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SearchByQuery(w http.ResponseWriter, r *http.Request) {
	req, err := dto.ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, r, "Search failed", err)
		return
	}
	h.search(w, r, req)
}

func (h *Handler) SearchByBody(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeSearchBody(r.Body, maxBodyBytes)
	if err != nil {
		h.writeServiceError(w, r, "Search failed", err)
		return
	}
	h.search(w, r, req)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, req domain.SearchRequest) {
	out, err := h.Service.Search(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, "Search failed", err)
		return
	}
	h.Logger.Info("Search served",
		"term", out.Query.Term,
		"outcome", out.Kind.String(),
		"source", string(out.Source),
		"result_count", out.Query.ResultCount,
	)
	writeJSON(w, http.StatusOK, dto.NewSearchResponse(out))
}

func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to get search", err)
		return
	}

	q, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "Failed to get search", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSearchByIDResponse(q))
}

func (h *Handler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to delete search", err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "Failed to delete search", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDeleteResponse(id))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.History(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to get search history", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewHistoryResponse(entries))
}

func (h *Handler) ListSearches(w http.ResponseWriter, r *http.Request) {
	queries, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to get searches", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSearchesResponse(queries))
}

func (h *Handler) ResultsByTerm(w http.ResponseWriter, r *http.Request) {
	term, err := dto.ParseTermParam(chi.URLParam(r, "searchTerm"), r.URL.RawPath != "")
	if err != nil {
		h.writeServiceError(w, r, "Failed to get results", err)
		return
	}

	queries, err := h.Service.ListByTerm(r.Context(), term)
	if err != nil {
		h.writeServiceError(w, r, "Failed to get results", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewResultsByTermResponse(term, queries))
}
