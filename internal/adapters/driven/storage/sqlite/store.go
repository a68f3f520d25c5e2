package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-xapian/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
	"github.com/custodia-labs/sercha-xapian/internal/core/ports/driven"
)

// FileName is the index file created inside a database directory.
const FileName = "index.sqlite"

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Empty data still gets a frame so the NOT NULL data column never sees nil.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithZeroFrames(true))
	decoder, _ = zstd.NewReader(nil)
)

func compressData(data string) []byte {
	return encoder.EncodeAll([]byte(data), make([]byte, 0, len(data)/2+16))
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a SQLite-backed index store.
// Writes are collected in one transaction until Commit.
type Store struct {
	db       *sql.DB
	tx       *sql.Tx
	path     string
	uuid     string
	readOnly bool
}

// Open opens or creates the writable index inside dir according to action.
func Open(dir string, action domain.DBAction) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)
	_, statErr := os.Stat(dbPath)
	exists := statErr == nil

	switch action {
	case domain.DBOpen:
		if !exists {
			return nil, fmt.Errorf("no index at %s: %w", dir, domain.ErrNotFound)
		}
	case domain.DBCreate:
		if exists {
			return nil, fmt.Errorf("index at %s: %w", dir, domain.ErrAlreadyExists)
		}
	case domain.DBCreateOrOverwrite:
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("removing existing index: %w", err)
			}
		}
	case domain.DBCreateOrOpen:
	default:
		return nil, fmt.Errorf("%w: database action %d", domain.ErrInvalidInput, action)
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	s, err := open(dbPath, "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := s.loadOrCreateUUID(); err != nil {
		s.db.Close()
		return nil, err
	}
	return s, nil
}

// OpenReadOnly opens an existing index inside dir for reading.
func OpenReadOnly(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no index at %s: %w", dir, domain.ErrNotFound)
	}

	s, err := open(dbPath, "?_pragma=busy_timeout(5000)&_pragma=query_only(1)")
	if err != nil {
		return nil, err
	}
	s.readOnly = true

	row := s.db.QueryRow("SELECT value FROM meta WHERE key = 'uuid'")
	if err := row.Scan(&s.uuid); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("reading index metadata: %w", err)
	}
	return s, nil
}

func open(dbPath, params string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+params)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UUID returns the identifier assigned when the index was created.
func (s *Store) UUID() string {
	return s.uuid
}

// Commit makes pending changes durable.
func (s *Store) Commit() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Close commits pending changes and closes the database connection.
func (s *Store) Close() error {
	commitErr := s.Commit()
	return errors.Join(commitErr, s.db.Close())
}

// q returns the open transaction, so reads see pending writes.
func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// writer returns the write transaction, starting one if needed.
func (s *Store) writer(ctx context.Context) (*sql.Tx, error) {
	if s.readOnly {
		return nil, fmt.Errorf("index is read-only: %w", domain.ErrInvalidInput)
	}
	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("beginning transaction: %w", err)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// DocCount returns the number of stored documents.
func (s *Store) DocCount(ctx context.Context) (uint32, error) {
	var n uint32
	if err := s.q().QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Get loads a document with its postings and values.
func (s *Store) Get(ctx context.Context, id domain.DocumentID) (*domain.StoredDocument, error) {
	var compressed []byte
	err := s.q().QueryRowContext(ctx, "SELECT data FROM documents WHERE docid = ?", id).Scan(&compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing document data: %w", err)
	}

	doc := &domain.StoredDocument{
		ID:     id,
		Data:   string(data),
		Values: make(map[domain.ValueNumber]string),
	}

	if doc.Postings, err = s.postingsOf(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.q().QueryContext(ctx, "SELECT slot, value FROM doc_values WHERE docid = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting values: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var slot domain.ValueNumber
		var value string
		if err := rows.Scan(&slot, &value); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		doc.Values[slot] = value
	}
	return doc, rows.Err()
}

func (s *Store) postingsOf(ctx context.Context, id domain.DocumentID) ([]domain.StoredPosting, error) {
	rows, err := s.q().QueryContext(ctx,
		"SELECT term, wdf, positions FROM postings WHERE docid = ? ORDER BY term", id)
	if err != nil {
		return nil, fmt.Errorf("getting postings: %w", err)
	}
	defer rows.Close()

	var postings []domain.StoredPosting
	for rows.Next() {
		var p domain.StoredPosting
		var blob []byte
		if err := rows.Scan(&p.Term, &p.Wdf, &blob); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		if p.Positions, err = decodePositions(blob); err != nil {
			return nil, fmt.Errorf("positions of %q: %w", p.Term, err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// Add stores doc under a new ID.
func (s *Store) Add(ctx context.Context, doc domain.StoredDocument) (domain.DocumentID, error) {
	tx, err := s.writer(ctx)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, "INSERT INTO documents (data) VALUES (?)",
		compressData(doc.Data))
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	if err := s.writeContent(ctx, tx, domain.DocumentID(id), doc); err != nil {
		return 0, err
	}
	return domain.DocumentID(id), nil
}

// Replace stores doc in place of the documents indexed by uniqueTerm.
func (s *Store) Replace(ctx context.Context, uniqueTerm string, doc domain.StoredDocument) (domain.DocumentID, error) {
	ids, err := s.docIDs(ctx, uniqueTerm)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return s.Add(ctx, doc)
	}

	tx, err := s.writer(ctx)
	if err != nil {
		return 0, err
	}
	keep := ids[0]
	for _, id := range ids[1:] {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE docid = ?", id); err != nil {
			return 0, fmt.Errorf("deleting duplicate document: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, "UPDATE documents SET data = ? WHERE docid = ?",
		compressData(doc.Data), keep); err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}
	for _, table := range []string{"postings", "doc_values"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE docid = ?", keep); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := s.writeContent(ctx, tx, keep, doc); err != nil {
		return 0, err
	}
	return keep, nil
}

func (s *Store) writeContent(ctx context.Context, tx *sql.Tx, id domain.DocumentID, doc domain.StoredDocument) error {
	for _, p := range doc.Postings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO postings (term, docid, wdf, positions) VALUES (?, ?, ?, ?)",
			p.Term, id, p.Wdf, encodePositions(p.Positions)); err != nil {
			return fmt.Errorf("inserting posting %q: %w", p.Term, err)
		}
	}

	slots := make([]domain.ValueNumber, 0, len(doc.Values))
	for slot := range doc.Values {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	for _, slot := range slots {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO doc_values (docid, slot, value) VALUES (?, ?, ?)",
			id, slot, doc.Values[slot]); err != nil {
			return fmt.Errorf("inserting value %d: %w", slot, err)
		}
	}
	return nil
}

// DeleteByTerm removes the documents indexed by term.
func (s *Store) DeleteByTerm(ctx context.Context, term string) (int, error) {
	ids, err := s.docIDs(ctx, term)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	tx, err := s.writer(ctx)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE docid = ?", id); err != nil {
			return 0, fmt.Errorf("deleting document: %w", err)
		}
	}
	return len(ids), nil
}

func (s *Store) docIDs(ctx context.Context, term string) ([]domain.DocumentID, error) {
	postings, err := s.Postings(ctx, term)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.DocumentID, len(postings))
	for i, p := range postings {
		ids[i] = p.DocID
	}
	return ids, nil
}

// Terms lists distinct terms starting with prefix in byte order.
func (s *Store) Terms(ctx context.Context, prefix string) ([]string, error) {
	query := "SELECT DISTINCT term FROM postings WHERE term >= ?"
	args := []any{prefix}
	if upper, ok := prefixUpperBound(prefix); ok {
		query += " AND term < ?"
		args = append(args, upper)
	}
	query += " ORDER BY term"

	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// prefixUpperBound returns the smallest string greater than every string
// starting with prefix. ok is false when no such bound exists.
func prefixUpperBound(prefix string) (string, bool) {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1]), true
		}
	}
	return "", false
}

// Postings lists the documents indexed by term in ID order.
func (s *Store) Postings(ctx context.Context, term string) ([]domain.PostingEntry, error) {
	rows, err := s.q().QueryContext(ctx,
		"SELECT docid, wdf FROM postings WHERE term = ? ORDER BY docid", term)
	if err != nil {
		return nil, fmt.Errorf("listing postings: %w", err)
	}
	defer rows.Close()

	var entries []domain.PostingEntry
	for rows.Next() {
		var e domain.PostingEntry
		if err := rows.Scan(&e.DocID, &e.Wdf); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) loadOrCreateUUID() error {
	row := s.db.QueryRow("SELECT value FROM meta WHERE key = 'uuid'")
	err := row.Scan(&s.uuid)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading index metadata: %w", err)
	}

	s.uuid = uuid.New().String()
	if _, err := s.db.Exec("INSERT INTO meta (key, value) VALUES ('uuid', ?)", s.uuid); err != nil {
		return fmt.Errorf("writing index metadata: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
