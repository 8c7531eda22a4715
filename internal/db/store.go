package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// timeLayout is fixed width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a store.Store kept in a single SQLite table of JSON documents.
type Store struct {
	db *sql.DB

	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

var _ store.Store = (*Store)(nil)

// NewStore wraps an open database. now supplies the server clock used for
// store.ServerTimestamp; nil means time.Now.
func NewStore(db *sql.DB, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}
}

// OpenStore opens the database at path with the named driver and wraps it.
func OpenStore(driver, path string) (*Store, error) {
	d, err := OpenDriver(driver, path)
	if err != nil {
		return nil, err
	}
	return NewStore(d, nil), nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// stamp returns the write time for one operation. Stamps are strictly
// increasing even if the clock stalls or steps backwards.
func (s *Store) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

// Add inserts data under a generated key.
func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()

	doc, err := encodeDocument(data, s.stamp())
	if err != nil {
		return "", err
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
		collection, id, doc,
	); err != nil {
		return "", fmt.Errorf("inserting %s document: %w", collection, err)
	}

	return id, nil
}

// Create inserts data under id.
func (s *Store) Create(ctx context.Context, collection, id string, data map[string]any) error {
	doc, err := encodeDocument(data, s.stamp())
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM documents WHERE collection = ? AND id = ?", collection, id,
		).Scan(&exists)
		if err == nil {
			return fmt.Errorf("%s/%s: %w", collection, id, store.ErrAlreadyExists)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking %s/%s: %w", collection, id, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
			collection, id, doc,
		); err != nil {
			return fmt.Errorf("inserting %s/%s: %w", collection, id, err)
		}
		return nil
	})
}

// Get fetches one document.
func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?", collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s/%s: %w", collection, id, err)
	}

	return decodeDocument(id, raw)
}

// Query returns the documents matching q.
func (s *Store) Query(ctx context.Context, q store.Query) (docs []*store.Document, err error) {
	query, args, err := buildQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", q.Collection, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			docs, err = nil, fmt.Errorf("closing %s rows: %w", q.Collection, closeErr)
		}
	}()

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", q.Collection, err)
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", q.Collection, err)
	}

	return docs, nil
}

// Update applies dotted-path updates to an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, updates []store.Update) error {
	ts := s.stamp()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		data, found, err := loadForWrite(ctx, tx, collection, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
		}

		for _, u := range updates {
			if err := setPath(data, u.Path, u.Value, ts); err != nil {
				return err
			}
		}

		return save(ctx, tx, collection, id, data)
	})
}

// Merge upserts data into the document.
func (s *Store) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	ts := s.stamp()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		current, _, err := loadForWrite(ctx, tx, collection, id)
		if err != nil {
			return err
		}

		if err := mergeInto(current, data, ts); err != nil {
			return err
		}

		return save(ctx, tx, collection, id, current)
	})
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?", collection, id,
	); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// loadForWrite reads a document's data inside tx. A missing document
// yields an empty map and found=false.
func loadForWrite(ctx context.Context, tx *sql.Tx, collection, id string) (map[string]any, bool, error) {
	var raw string
	err := tx.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?", collection, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s/%s: %w", collection, id, err)
	}

	doc, err := decodeDocument(id, raw)
	if err != nil {
		return nil, false, err
	}
	return doc.Data, true, nil
}

// save upserts already-encoded data.
func save(ctx context.Context, tx *sql.Tx, collection, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling %s/%s: %w", collection, id, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		collection, id, string(raw),
	)
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", collection, id, err)
	}
	return nil
}

func decodeDocument(id, raw string) (*store.Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return &store.Document{ID: id, Data: data}, nil
}

func encodeDocument(data map[string]any, ts time.Time) (string, error) {
	encoded, err := encodeValue(data, ts)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return "", fmt.Errorf("marshaling document: %w", err)
	}
	return string(raw), nil
}

// buildQuery translates q into SQL over the documents table.
func buildQuery(q store.Query) (string, []any, error) {
	var b strings.Builder
	b.WriteString("SELECT id, data FROM documents WHERE collection = ?")
	args := []any{q.Collection}

	for _, f := range q.Filters {
		if !f.Op.Valid() {
			return "", nil, fmt.Errorf("unsupported operator %q", f.Op)
		}
		v, err := queryValue(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("filter on %s: %w", f.Path, err)
		}
		if f.Path == store.DocumentID {
			fmt.Fprintf(&b, " AND id %s ?", sqlOperator(f.Op))
			args = append(args, v)
			continue
		}
		fmt.Fprintf(&b, " AND json_extract(data, ?) %s ?", sqlOperator(f.Op))
		args = append(args, jsonPath(f.Path), v)
	}

	dir := "ASC"
	if q.Direction == store.Desc {
		dir = "DESC"
	}

	switch q.OrderBy {
	case "", store.DocumentID:
		if q.OrderBy == "" {
			dir = "ASC"
		}
		fmt.Fprintf(&b, " ORDER BY id %s", dir)
	default:
		b.WriteString(" AND json_extract(data, ?) IS NOT NULL")
		fmt.Fprintf(&b, " ORDER BY json_extract(data, ?) %s, id %s", dir, dir)
		path := jsonPath(q.OrderBy)
		args = append(args, path, path)
	}

	return b.String(), args, nil
}

func sqlOperator(op store.Operator) string {
	if op == store.Equal {
		return "="
	}
	return string(op)
}

// jsonPath converts a dotted field path into a quoted SQLite JSON path.
func jsonPath(path string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range strings.Split(path, ".") {
		b.WriteString(`."`)
		b.WriteString(strings.ReplaceAll(seg, `"`, `\"`))
		b.WriteString(`"`)
	}
	return b.String()
}

// queryValue converts a filter operand to the form json_extract yields.
func queryValue(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(timeLayout), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string, int, int32, int64, float64:
		return x, nil
	case store.Transform:
		return nil, fmt.Errorf("transforms cannot be used in filters")
	default:
		return nil, fmt.Errorf("unsupported filter value %T", v)
	}
}
