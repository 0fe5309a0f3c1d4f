// Package treebank stores parse results in SQLite, keyed by the fingerprint
// of the grammar they were produced with.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package treebank

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/npillmayer/pcky/cky"
	"github.com/npillmayer/pcky/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.treebank'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.treebank")
}

// Record is a stored parse result. Failed parses are stored with an empty
// tree and the failure message.
type Record struct {
	ID        int64
	Grammar   string // grammar fingerprint
	Sentence  string // words, separated by single spaces
	Tree      string // bracketed tree, empty for failed parses
	LogProb   float64
	NumParses uint64
	Failure   string
	CreatedAt int64 // Unix milliseconds
}

// Success is true if the record holds a parse tree.
func (rec *Record) Success() bool {
	return rec.Failure == ""
}

// ParseTree reads the record's tree.
func (rec *Record) ParseTree() (*tree.Node, error) {
	if !rec.Success() {
		return nil, fmt.Errorf("record %d holds a failed parse: %s", rec.ID, rec.Failure)
	}
	return tree.Read(rec.Tree)
}

// Store is the SQLite-backed treebank. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS parses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    grammar TEXT NOT NULL,
    sentence TEXT NOT NULL,
    tree TEXT NOT NULL DEFAULT '',
    log_prob REAL NOT NULL DEFAULT 0,
    num_parses TEXT NOT NULL DEFAULT '0',
    failure TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parses_grammar ON parses(grammar, sentence);
`

// Open opens a treebank with a specific data source name. Use ":memory:"
// for an in-memory treebank or a file path for persistent storage.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open treebank: %w", err)
	}
	if dsn == ":memory:" { // every connection would see a database of its own
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	tracer().Debugf("opened treebank %s", dsn)
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Save stores a parse result for a grammar fingerprint and returns the ID
// of the new record.
func (s *Store) Save(grammar string, r *cky.Result) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		Grammar:   grammar,
		Sentence:  strings.Join(r.Words(), " "),
		LogProb:   r.LogProb,
		NumParses: r.NumParses,
		CreatedAt: time.Now().UnixMilli(),
	}
	if r.Success() {
		rec.Tree = r.Tree.String()
	} else {
		rec.Failure = r.Failure.Error()
	}
	res, err := s.db.Exec(`
		INSERT INTO parses (grammar, sentence, tree, log_prob, num_parses, failure, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Grammar, rec.Sentence, rec.Tree, rec.LogProb,
		strconv.FormatUint(rec.NumParses, 10), rec.Failure, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to save parse: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	tracer().P("grammar", grammar).Debugf("saved parse %d for %q", id, rec.Sentence)
	return id, nil
}

const selectRecord = `
	SELECT id, grammar, sentence, tree, log_prob, num_parses, failure, created_at
	FROM parses`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var numParses string
	err := row.Scan(&rec.ID, &rec.Grammar, &rec.Sentence, &rec.Tree, &rec.LogProb,
		&numParses, &rec.Failure, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if rec.NumParses, err = strconv.ParseUint(numParses, 10, 64); err != nil {
		return nil, fmt.Errorf("corrupt parse count in record %d: %w", rec.ID, err)
	}
	return &rec, nil
}

// Get retrieves a record by ID. It returns nil if there is no such record.
func (s *Store) Get(id int64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := scanRecord(s.db.QueryRow(selectRecord+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// Lookup retrieves the most recent record for a sentence parsed with a
// grammar. It returns nil if the sentence has not been stored.
func (s *Store) Lookup(grammar string, words []string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := scanRecord(s.db.QueryRow(selectRecord+`
		WHERE grammar = ? AND sentence = ?
		ORDER BY id DESC LIMIT 1
	`, grammar, strings.Join(words, " ")))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// ByGrammar retrieves all records for a grammar fingerprint, in order of
// insertion.
func (s *Store) ByGrammar(grammar string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectRecord+` WHERE grammar = ? ORDER BY id`, grammar)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
