package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"martianoff/sjavac/internal/sjava"
)

// Entry is a cached verdict and the parts of the error that produced it.
type Entry struct {
	Verdict sjava.Verdict
	Kind    string
	Line    int
	Message string
}

// Store wraps a SQLite connection holding verdicts keyed by fingerprint.
// It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	dbPath string
}

// OpenPath opens or creates a SQLite database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory SQLite database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	// every connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	s := &Store{db: db, dbPath: ":memory:"}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS verdicts (
		fingerprint TEXT PRIMARY KEY,
		verdict INTEGER NOT NULL,
		kind TEXT NOT NULL DEFAULT '',
		line INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		checked_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached entry for fingerprint, if any.
func (s *Store) Get(fingerprint string) (Entry, bool, error) {
	var (
		e       Entry
		verdict int
	)
	err := s.db.QueryRow(
		`SELECT verdict, kind, line, message FROM verdicts WHERE fingerprint = ?`, fingerprint,
	).Scan(&verdict, &e.Kind, &e.Line, &e.Message)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get verdict: %w", err)
	}
	e.Verdict = sjava.Verdict(verdict)
	return e, true, nil
}

// Put stores or replaces the entry for fingerprint. IoError verdicts describe
// the environment rather than the source and are not cached.
func (s *Store) Put(fingerprint string, e Entry) error {
	if e.Verdict == sjava.IOError {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO verdicts (fingerprint, verdict, kind, line, message, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			verdict = excluded.verdict,
			kind = excluded.kind,
			line = excluded.line,
			message = excluded.message,
			checked_at = excluded.checked_at`,
		fingerprint, int(e.Verdict), e.Kind, e.Line, e.Message, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put verdict: %w", err)
	}
	return nil
}

// Count returns the number of cached verdicts.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM verdicts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count verdicts: %w", err)
	}
	return n, nil
}

// Clear removes every cached verdict.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM verdicts`); err != nil {
		return fmt.Errorf("clear verdicts: %w", err)
	}
	return nil
}
