package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/itunescache/itunescache/internal/domain"
)

func (q Queries) InsertItem(ctx context.Context, item *domain.SearchResultItem) error {
	stmt := `INSERT INTO search_result_items (
		search_query_id, track_id, wrapper_type, kind, artist_name, collection_name, track_name,
		collection_view_url, track_view_url, preview_url, artwork_url30, artwork_url60, artwork_url100,
		collection_price, track_price, release_date, collection_explicitness, track_explicitness,
		track_count, track_time_millis, country, currency, primary_genre_name, long_description,
		created_at, updated_at
	) VALUES (
		:search_query_id, :track_id, :wrapper_type, :kind, :artist_name, :collection_name, :track_name,
		:collection_view_url, :track_view_url, :preview_url, :artwork_url30, :artwork_url60, :artwork_url100,
		:collection_price, :track_price, :release_date, :collection_explicitness, :track_explicitness,
		:track_count, :track_time_millis, :country, :currency, :primary_genre_name, :long_description,
		:created_at, :updated_at
	)`

	res, err := sqlx.NamedExecContext(ctx, q.ext, stmt, item)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id
	return nil
}

func (q Queries) DeleteItemsByQueryID(ctx context.Context, queryID int64) (int64, error) {
	res, err := q.ext.ExecContext(ctx, `DELETE FROM search_result_items WHERE search_query_id = ?`, queryID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListItemsByQueryIDs returns the items of every given query grouped by
// owner, each group in insertion order.
func (q Queries) ListItemsByQueryIDs(ctx context.Context, ids []int64) (map[int64][]*domain.SearchResultItem, error) {
	grouped := make(map[int64][]*domain.SearchResultItem, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	stmt, args, err := sqlx.In(`SELECT * FROM search_result_items WHERE search_query_id IN (?) ORDER BY search_query_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to expand item query: %w", err)
	}

	var items []*domain.SearchResultItem
	if err := sqlx.SelectContext(ctx, q.ext, &items, q.ext.Rebind(stmt), args...); err != nil {
		return nil, err
	}
	for _, item := range items {
		grouped[item.SearchQueryID] = append(grouped[item.SearchQueryID], item)
	}
	return grouped, nil
}

func (q Queries) CountItems(ctx context.Context, queryID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, q.ext, &n, `SELECT COUNT(*) FROM search_result_items WHERE search_query_id = ?`, queryID)
	return n, err
}
