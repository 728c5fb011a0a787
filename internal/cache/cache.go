package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/routelens/routelens/pkg/types"
)

// Store persists synthesized analyses so unchanged routes skip the
// generative service on later runs.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=10000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		key        TEXT PRIMARY KEY,
		method     TEXT NOT NULL,
		path       TEXT NOT NULL,
		analysis   TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_path ON analyses(method, path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached analysis for the route, if any. A decode failure
// is treated as a miss so a corrupt row cannot poison a run.
func (s *Store) Get(route types.Route) (*types.Analysis, bool) {
	var raw string
	err := s.db.QueryRow(`SELECT analysis FROM analyses WHERE key = ?`, routeKey(route)).Scan(&raw)
	if err != nil {
		return nil, false
	}
	var analysis types.Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, false
	}
	return &analysis, true
}

// Put stores the analysis under the route's content key.
func (s *Store) Put(route types.Route, analysis types.Analysis) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO analyses (key, method, path, analysis, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET analysis = excluded.analysis, created_at = excluded.created_at`,
		routeKey(route), route.Method, route.Path, string(raw), time.Now().Unix())
	return err
}

// Purge drops entries older than maxAge.
func (s *Store) Purge(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge).Unix()
	_, err := s.db.Exec(`DELETE FROM analyses WHERE created_at < ?`, cutoff)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// routeKey hashes the fields that influence an analysis, so edits to the
// handler or its comment invalidate the cached entry.
func routeKey(route types.Route) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", route.Method, route.Path, route.HandlerSource, route.LeadingComment)
	return hex.EncodeToString(h.Sum(nil))
}
