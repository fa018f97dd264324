package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/itunescache/itunescache/internal/domain"
)

// Queries holds the statements shared by DB and Tx.
type Queries struct {
	ext sqlx.ExtContext
}

const queryColumns = `id, term, result_limit, result_count, created_at, updated_at`

// InsertQuery creates the row for q.Term and fills q.ID. When another
// writer already owns the term nothing is written and inserted is false.
func (q Queries) InsertQuery(ctx context.Context, query *domain.SearchQuery) (inserted bool, err error) {
	stmt := `INSERT INTO search_queries (term, result_limit, result_count, created_at, updated_at)
		VALUES (:term, :result_limit, :result_count, :created_at, :updated_at)
		ON CONFLICT(term) DO NOTHING
		RETURNING id`

	rows, err := sqlx.NamedQueryContext(ctx, q.ext, stmt, query)
	if err != nil {
		return false, fmt.Errorf("failed to insert search query: %w", err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	if rows.Next() {
		if err := rows.Scan(&query.ID); err != nil {
			return false, fmt.Errorf("failed to scan search query id: %w", err)
		}
		return true, nil
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("error iterating returning rows: %w", err)
	}
	return false, nil
}

func (q Queries) GetQueryByTerm(ctx context.Context, term string) (*domain.SearchQuery, error) {
	stmt := `SELECT ` + queryColumns + ` FROM search_queries WHERE term = ?`

	var query domain.SearchQuery
	err := sqlx.GetContext(ctx, q.ext, &query, stmt, term)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &query, nil
}

func (q Queries) GetQueryByID(ctx context.Context, id int64) (*domain.SearchQuery, error) {
	stmt := `SELECT ` + queryColumns + ` FROM search_queries WHERE id = ?`

	var query domain.SearchQuery
	err := sqlx.GetContext(ctx, q.ext, &query, stmt, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &query, nil
}

// ListQueries returns every query, newest first.
func (q Queries) ListQueries(ctx context.Context) ([]*domain.SearchQuery, error) {
	stmt := `SELECT ` + queryColumns + ` FROM search_queries ORDER BY created_at DESC, id DESC`

	var queries []*domain.SearchQuery
	err := sqlx.SelectContext(ctx, q.ext, &queries, stmt)
	return queries, err
}

func (q Queries) ListQueriesByTerm(ctx context.Context, term string) ([]*domain.SearchQuery, error) {
	stmt := `SELECT ` + queryColumns + ` FROM search_queries WHERE term = ? ORDER BY created_at DESC, id DESC`

	var queries []*domain.SearchQuery
	err := sqlx.SelectContext(ctx, q.ext, &queries, stmt, term)
	return queries, err
}

func (q Queries) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	stmt := `SELECT term, result_count FROM search_queries ORDER BY created_at DESC, id DESC`

	var entries []domain.HistoryEntry
	err := sqlx.SelectContext(ctx, q.ext, &entries, stmt)
	return entries, err
}

// UpdateQueryStats stores the limit and count of the latest write.
func (q Queries) UpdateQueryStats(ctx context.Context, id int64, limit, resultCount int, updatedAt time.Time) error {
	stmt := `UPDATE search_queries SET result_limit = ?, result_count = ?, updated_at = ? WHERE id = ?`
	_, err := q.ext.ExecContext(ctx, stmt, limit, resultCount, updatedAt, id)
	return err
}

// DeleteQuery removes the query and, through the foreign key, its items.
func (q Queries) DeleteQuery(ctx context.Context, id int64) (bool, error) {
	res, err := q.ext.ExecContext(ctx, `DELETE FROM search_queries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
