package store

const Schema = `
CREATE TABLE IF NOT EXISTS search_queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	term TEXT NOT NULL,
	result_limit INTEGER NOT NULL DEFAULT 50,
	result_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

-- One row per distinct term
CREATE UNIQUE INDEX IF NOT EXISTS idx_search_queries_term ON search_queries(term);
CREATE INDEX IF NOT EXISTS idx_search_queries_created_at ON search_queries(created_at);

CREATE TABLE IF NOT EXISTS search_result_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	search_query_id INTEGER NOT NULL,
	track_id INTEGER NOT NULL,

	-- Metadata
	wrapper_type TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL DEFAULT '',
	artist_name TEXT NOT NULL DEFAULT '',
	collection_name TEXT NOT NULL DEFAULT '',
	track_name TEXT NOT NULL DEFAULT '',
	collection_view_url TEXT NOT NULL DEFAULT '',
	track_view_url TEXT NOT NULL DEFAULT '',
	preview_url TEXT NOT NULL DEFAULT '',
	artwork_url30 TEXT NOT NULL DEFAULT '',
	artwork_url60 TEXT NOT NULL DEFAULT '',
	artwork_url100 TEXT NOT NULL DEFAULT '',
	collection_price REAL NOT NULL DEFAULT 0,
	track_price REAL NOT NULL DEFAULT 0,
	release_date DATETIME NOT NULL,
	collection_explicitness TEXT NOT NULL DEFAULT '',
	track_explicitness TEXT NOT NULL DEFAULT '',
	track_count INTEGER NOT NULL DEFAULT 0,
	track_time_millis INTEGER NOT NULL DEFAULT 0,
	country TEXT NOT NULL DEFAULT '',
	currency TEXT NOT NULL DEFAULT '',
	primary_genre_name TEXT NOT NULL DEFAULT '',
	long_description TEXT NOT NULL DEFAULT '',

	-- Timestamps
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,

	FOREIGN KEY (search_query_id) REFERENCES search_queries(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_search_result_items_query_track ON search_result_items(search_query_id, track_id);
`
