// Package cache memoizes pipeline results on disk: given a source file's
// content hash, it stores the macro-expanded ET and its inferred type
// scheme so a later run of the same unchanged source can skip straight
// to interpretation. It exercises internal/element's persisted JSON form
// (element.Element's MarshalJSON/UnmarshalJSON) as the payload format,
// and is opt-in: a command-line invocation with no --cache flag never
// touches it.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/hm"
)

// Store wraps a sqlite-backed memoization table keyed by source hash.
type Store struct {
	db *sql.DB
}

// Entry is one cached pipeline result.
type Entry struct {
	Tree       *element.Element
	TypeString string
	RunID      uuid.UUID
	CachedAt   time.Time
}

// Open creates or attaches to the sqlite database at path, creating the
// entries table if it doesn't already exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	hash        TEXT PRIMARY KEY,
	tree_json   BLOB NOT NULL,
	type_string TEXT NOT NULL,
	run_id      TEXT NOT NULL,
	cached_at   TIMESTAMP NOT NULL
);
`

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Hash returns the hex-encoded SHA-256 digest of source, the key under
// which Get/Put address a cached entry.
func Hash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get looks up the cached entry for hash. The second return value is
// false if no entry exists (not an error).
func (s *Store) Get(hash string) (*Entry, bool, error) {
	row := s.db.QueryRow(
		`SELECT tree_json, type_string, run_id, cached_at FROM entries WHERE hash = ?`, hash)

	var treeJSON []byte
	var typeString, runID string
	var cachedAt time.Time
	if err := row.Scan(&treeJSON, &typeString, &runID, &cachedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: get %s: %w", hash, err)
	}

	var tree element.Element
	if err := json.Unmarshal(treeJSON, &tree); err != nil {
		return nil, false, fmt.Errorf("cache: decode entry %s: %w", hash, err)
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, false, fmt.Errorf("cache: decode run id for %s: %w", hash, err)
	}
	return &Entry{Tree: &tree, TypeString: typeString, RunID: id, CachedAt: cachedAt}, true, nil
}

// Put stores (or replaces) the entry for hash.
func (s *Store) Put(hash string, tree *element.Element, typ hm.Type, runID uuid.UUID) error {
	treeJSON, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("cache: encode tree for %s: %w", hash, err)
	}
	typeString := ""
	if typ != nil {
		typeString = typ.String()
	}
	_, err = s.db.Exec(
		`INSERT INTO entries (hash, tree_json, type_string, run_id, cached_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET tree_json = excluded.tree_json,
			type_string = excluded.type_string, run_id = excluded.run_id, cached_at = excluded.cached_at`,
		hash, treeJSON, typeString, runID.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", hash, err)
	}
	return nil
}
