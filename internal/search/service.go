package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/itunes"
	"github.com/itunescache/itunescache/internal/metrics"
	"github.com/itunescache/itunescache/internal/store"
)

// Logger is the logging capability the service needs. *slog.Logger and
// *logger.Logger both satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// scopedLogger prefixes every line with a fixed set of attributes.
type scopedLogger struct {
	base  Logger
	attrs []any
}

func withAttrs(l Logger, attrs ...any) Logger {
	return &scopedLogger{base: l, attrs: attrs}
}

func (l *scopedLogger) args(args []any) []any {
	out := make([]any, 0, len(l.attrs)+len(args))
	return append(append(out, l.attrs...), args...)
}

func (l *scopedLogger) Debug(msg string, args ...any) { l.base.Debug(msg, l.args(args)...) }
func (l *scopedLogger) Info(msg string, args ...any)  { l.base.Info(msg, l.args(args)...) }
func (l *scopedLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, l.args(args)...) }
func (l *scopedLogger) Error(msg string, args ...any) { l.base.Error(msg, l.args(args)...) }

// Store is the persistence the service reads and writes.
type Store interface {
	GetQueryByTerm(ctx context.Context, term string) (*domain.SearchQuery, error)
	GetQueryByID(ctx context.Context, id int64) (*domain.SearchQuery, error)
	ListQueries(ctx context.Context) ([]*domain.SearchQuery, error)
	ListQueriesByTerm(ctx context.Context, term string) ([]*domain.SearchQuery, error)
	ListHistory(ctx context.Context) ([]domain.HistoryEntry, error)
	ListItemsByQueryIDs(ctx context.Context, ids []int64) (map[int64][]*domain.SearchResultItem, error)
	DeleteQuery(ctx context.Context, id int64) (bool, error)
	RunInTx(ctx context.Context, fn func(tx *store.Tx) error) error
}

type Config struct {
	Policy         domain.CachePolicy
	DefaultCountry string
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

type Service struct {
	store   Store
	fetcher itunes.Fetcher
	log     Logger
	now     func() time.Time
	policy  domain.CachePolicy
	country string
	sf      singleflight.Group
}

func NewService(st Store, fetcher itunes.Fetcher, log Logger, cfg Config) *Service {
	if cfg.Policy == "" {
		cfg.Policy = domain.PolicyFirstWriteWins
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		store:   st,
		fetcher: fetcher,
		log:     log,
		now:     cfg.Now,
		policy:  cfg.Policy,
		country: cfg.DefaultCountry,
	}
}

// Policy reports the cache policy in effect.
func (s *Service) Policy() domain.CachePolicy {
	return s.policy
}

var errQueryGone = errors.New("search query deleted during refresh")

// Search validates req, then serves it from the store or the upstream
// according to the cache policy. Concurrent identical requests share one
// lookup, fetch and write.
func (s *Service) Search(ctx context.Context, req domain.SearchRequest) (domain.Outcome, error) {
	req, err := req.Normalize(s.country)
	if err != nil {
		return domain.Outcome{}, err
	}

	searchID := uuid.New().String()
	log := withAttrs(s.log, "search_id", searchID, "term", req.Term)
	log.Info("Searching", "media", req.Media, "country", req.Country, "limit", *req.Limit, "policy", s.policy)

	// The shared call outlives any single caller; the upstream timeout bounds it.
	sharedCtx := context.WithoutCancel(ctx)
	v, err, shared := s.sf.Do(flightKey(req), func() (interface{}, error) {
		return s.search(sharedCtx, req, log)
	})
	if err != nil {
		log.Error("Search failed", "error", err)
		return domain.Outcome{}, err
	}
	if shared {
		log.Debug("Joined in-flight search")
	}

	outcome, ok := v.(domain.Outcome)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("unexpected result type from singleflight")
	}
	return outcome, nil
}

// flightKey identifies a normalized request. Requests that differ in any
// parameter never share a result.
func flightKey(req domain.SearchRequest) string {
	return strings.Join([]string{req.Term, string(req.Media), req.Country, strconv.Itoa(*req.Limit)}, "\x00")
}

func (s *Service) search(ctx context.Context, req domain.SearchRequest, log Logger) (domain.Outcome, error) {
	existing, err := s.store.GetQueryByTerm(ctx, req.Term)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("failed to look up search: %w", err)
	}

	if existing != nil && s.policy == domain.PolicyFirstWriteWins {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupHit).Inc()
		log.Info("Found existing search", "search_query_id", existing.ID, "result_count", existing.ResultCount)
		if err := s.attachItems(ctx, existing); err != nil {
			return domain.Outcome{}, err
		}
		return domain.NewOutcome(existing, domain.SourceCache), nil
	}

	if existing != nil {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupRefresh).Inc()
	} else {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.LookupMiss).Inc()
	}

	resp, err := s.fetcher.Search(ctx, itunes.Params{
		Term:    req.Term,
		Media:   req.Media,
		Country: req.Country,
		Limit:   *req.Limit,
	})
	if err != nil {
		return domain.Outcome{}, err
	}
	if len(resp.Results) == 0 {
		log.Warn("No results found")
	}

	if existing != nil {
		q, err := s.refresh(ctx, existing, req, resp.Results, log)
		if errors.Is(err, errQueryGone) {
			log.Warn("Search deleted during refresh, recreating", "search_query_id", existing.ID)
			return s.create(ctx, req, resp.Results, log)
		}
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.NewOutcome(q, domain.SourceUpstream), nil
	}
	return s.create(ctx, req, resp.Results, log)
}

// create inserts the query row and its items in one transaction. If another
// writer claimed the term first, the winner's row is used instead.
func (s *Service) create(ctx context.Context, req domain.SearchRequest, raw []itunes.APIResult, log Logger) (domain.Outcome, error) {
	now := s.now()
	q := &domain.SearchQuery{
		Term:      req.Term,
		Limit:     *req.Limit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var (
		inserted bool
		failed   int
	)
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		var err error
		inserted, err = tx.InsertQuery(ctx, q)
		if err != nil || !inserted {
			return err
		}

		q.Results, failed, err = persistItems(ctx, tx, q.ID, raw, now, log)
		if err != nil {
			return err
		}
		q.ResultCount = len(q.Results)
		return tx.UpdateQueryStats(ctx, q.ID, q.Limit, q.ResultCount, now)
	})
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("failed to save search: %w", err)
	}

	if !inserted {
		return s.adoptWinner(ctx, req, raw, log)
	}

	recordPersisted(q.ResultCount, failed)
	log.Info("Saved search", "search_query_id", q.ID, "result_count", q.ResultCount, "failed", failed)
	return domain.NewOutcome(q, domain.SourceUpstream), nil
}

func (s *Service) adoptWinner(ctx context.Context, req domain.SearchRequest, raw []itunes.APIResult, log Logger) (domain.Outcome, error) {
	winner, err := s.store.GetQueryByTerm(ctx, req.Term)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("failed to look up search: %w", err)
	}
	if winner == nil {
		return domain.Outcome{}, fmt.Errorf("search for %q vanished after insert conflict", req.Term)
	}
	log.Info("Another writer saved this term first", "search_query_id", winner.ID)

	if s.policy == domain.PolicyAlwaysRefresh {
		q, err := s.refresh(ctx, winner, req, raw, log)
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.NewOutcome(q, domain.SourceUpstream), nil
	}

	if err := s.attachItems(ctx, winner); err != nil {
		return domain.Outcome{}, err
	}
	return domain.NewOutcome(winner, domain.SourceCache), nil
}

// refresh replaces the items of existing with raw in one transaction.
func (s *Service) refresh(ctx context.Context, existing *domain.SearchQuery, req domain.SearchRequest, raw []itunes.APIResult, log Logger) (*domain.SearchQuery, error) {
	now := s.now()

	var (
		items   []*domain.SearchResultItem
		failed  int
		removed int64
	)
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		current, err := tx.GetQueryByID(ctx, existing.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return errQueryGone
		}

		removed, err = tx.DeleteItemsByQueryID(ctx, existing.ID)
		if err != nil {
			return err
		}

		items, failed, err = persistItems(ctx, tx, existing.ID, raw, now, log)
		if err != nil {
			return err
		}
		return tx.UpdateQueryStats(ctx, existing.ID, *req.Limit, len(items), now)
	})
	if errors.Is(err, errQueryGone) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to refresh search: %w", err)
	}

	existing.Limit = *req.Limit
	existing.ResultCount = len(items)
	existing.UpdatedAt = now
	existing.Results = items

	recordPersisted(len(items), failed)
	log.Info("Refreshed search", "search_query_id", existing.ID, "removed", removed, "result_count", len(items), "failed", failed)
	return existing, nil
}

// persistItems maps raw and inserts each row. A row that fails to insert is
// logged and skipped; only the returned rows were written.
func persistItems(ctx context.Context, tx *store.Tx, ownerID int64, raw []itunes.APIResult, now time.Time, log Logger) (saved []*domain.SearchResultItem, failed int, err error) {
	items, dropped := itunes.MapResults(raw, ownerID, now)
	if dropped > 0 {
		log.Debug("Skipped results without trackId", "dropped", dropped)
	}

	saved = make([]*domain.SearchResultItem, 0, len(items))
	for _, item := range items {
		if err := tx.InsertItem(ctx, item); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, failed, ctxErr
			}
			pErr := &domain.PersistenceError{TrackID: item.TrackID, Err: err}
			log.Error("Failed to save result", "track_id", item.TrackID, "error", pErr)
			failed++
			continue
		}
		saved = append(saved, item)
	}
	return saved, failed, nil
}

func recordPersisted(saved, failed int) {
	metrics.ItemsPersistedTotal.Add(float64(saved))
	metrics.ItemPersistFailuresTotal.Add(float64(failed))
}

// History lists every search term with its result count, newest first.
func (s *Service) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.store.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

// ListAll returns every stored search with its items, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*domain.SearchQuery, error) {
	queries, err := s.store.ListQueries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	if err := s.attachItems(ctx, queries...); err != nil {
		return nil, err
	}
	if queries == nil {
		queries = []*domain.SearchQuery{}
	}
	return queries, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.SearchQuery, error) {
	q, err := s.store.GetQueryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get search: %w", err)
	}
	if q == nil {
		return nil, &domain.NotFoundError{Resource: "search", ID: strconv.FormatInt(id, 10)}
	}
	if err := s.attachItems(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListByTerm returns the searches stored under exactly term, newest first.
func (s *Service) ListByTerm(ctx context.Context, term string) ([]*domain.SearchQuery, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &domain.ValidationError{Field: "searchTerm", Message: "Search term is required"}
	}

	queries, err := s.store.ListQueriesByTerm(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches for term: %w", err)
	}
	if err := s.attachItems(ctx, queries...); err != nil {
		return nil, err
	}
	if queries == nil {
		queries = []*domain.SearchQuery{}
	}
	return queries, nil
}

// Delete removes a stored search and its items.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteQuery(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}
	if !deleted {
		return &domain.NotFoundError{Resource: "search", ID: strconv.FormatInt(id, 10)}
	}
	s.log.Info("Search deleted", "search_query_id", id)
	return nil
}

func (s *Service) attachItems(ctx context.Context, queries ...*domain.SearchQuery) error {
	if len(queries) == 0 {
		return nil
	}
	ids := make([]int64, len(queries))
	for i, q := range queries {
		ids[i] = q.ID
	}

	grouped, err := s.store.ListItemsByQueryIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	for _, q := range queries {
		q.Results = grouped[q.ID]
		if q.Results == nil {
			q.Results = []*domain.SearchResultItem{}
		}
	}
	return nil
}
