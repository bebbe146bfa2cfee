package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/debresearch/licensetrend/internal/model"
)

// DefaultTTL is how long a cached response stays valid. The archive's
// metadata changes slowly, so repeated runs within roughly a release
// cycle month can reuse every response.
const DefaultTTL = 35 * 24 * time.Hour

// ResponseCache is a SQLite-backed, time-expiring store of fetched
// documents keyed by request path. It memoizes both the package-list
// fetch and each copyright-document fetch, including "not found"
// outcomes, so repeated runs do not re-hit the network.
//
// Design decision: We use a single database file rather than one file
// per cache entry. A survey touches thousands of paths and a flat file
// tree would be slower to expire and harder to inspect; SQLite gives us
// both in one place with an index.
type ResponseCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// ttl is the entry expiry. Entries older than ttl are misses.
	ttl time.Duration
}

// Options configures ResponseCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended for most uses.
	EnableWAL bool

	// TTL is the entry expiry. Zero means DefaultTTL.
	TTL time.Duration
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		TTL:               DefaultTTL,
	}
}

// Open opens or creates a ResponseCache in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ResponseCache, error) {
	dbPath := filepath.Join(dbDir, "licensetrend.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("cache not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check cache path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// SQLite only supports one writer; the survey is sequential anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	rc := &ResponseCache{
		db:     db,
		dbPath: dbPath,
		ttl:    ttl,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rc.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rc, nil
}

// Close closes the database connection.
func (rc *ResponseCache) Close() error {
	return rc.db.Close()
}

// createTables creates the cache schema if it doesn't exist.
func (rc *ResponseCache) createTables() error {
	schema := `
	-- Responses memoize one fetch per request path. "found" records
	-- whether the remote service had the document at all, so missing
	-- packages are cached too and never re-fetched within the TTL.
	CREATE TABLE IF NOT EXISTS responses (
		path TEXT PRIMARY KEY,
		found INTEGER NOT NULL,
		body TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
	`

	_, err := rc.db.ExecContext(context.Background(), schema)
	return err
}

// Get retrieves the cached response for a request path.
// It returns nil with no error on a miss, including when the entry has
// expired.
func (rc *ResponseCache) Get(ctx context.Context, path string) (*model.Document, error) {
	query := `
	SELECT found, body FROM responses
	WHERE path = ? AND fetched_at > datetime('now', ?)
	`

	// SQLite datetime modifier format
	modifier := fmt.Sprintf("-%d seconds", int(rc.ttl.Seconds()))

	var found int
	var body string
	err := rc.db.QueryRowContext(ctx, query, path, modifier).Scan(&found, &body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached response: %w", err)
	}

	return &model.Document{Found: found != 0, Body: body}, nil
}

// Put stores a response for a request path, replacing any previous entry
// and resetting its age.
func (rc *ResponseCache) Put(ctx context.Context, path string, doc model.Document) error {
	query := `
	INSERT INTO responses (path, found, body)
	VALUES (?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		found = excluded.found,
		body = excluded.body,
		fetched_at = CURRENT_TIMESTAMP
	`

	found := 0
	if doc.Found {
		found = 1
	}

	if _, err := rc.db.ExecContext(ctx, query, path, found, doc.Body); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// Len returns the number of entries currently stored, expired or not.
func (rc *ResponseCache) Len(ctx context.Context) (int, error) {
	var count int
	err := rc.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM responses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
