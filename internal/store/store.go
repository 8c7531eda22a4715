// Package store defines the document-store contract the data layer is written against.
//
// A store holds schemaless documents grouped into named collections. Documents are
// nested maps of plain values (strings, numbers, booleans, time.Time, maps, slices).
// Writes may carry field transforms that the store resolves at write time.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("store: document not found")
	// ErrAlreadyExists is returned by Create when the key is taken.
	ErrAlreadyExists = errors.New("store: document already exists")
	// ErrInvalid matches errors for writes rejected before reaching the store.
	ErrInvalid = errors.New("store: invalid input")
)

type invalidError struct{ msg string }

func (e *invalidError) Error() string        { return e.msg }
func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

// Invalidf formats a validation error that matches ErrInvalid.
func Invalidf(format string, args ...any) error {
	return &invalidError{msg: fmt.Sprintf(format, args...)}
}

// DocumentID is the pseudo field path that addresses a document's key
// in filters and ordering.
const DocumentID = "__name__"

// DateLayout is the calendar date format used for date fields and analytics keys.
const DateLayout = "2006-01-02"

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Operator is a filter comparison.
type Operator string

const (
	Equal          Operator = "=="
	Less           Operator = "<"
	LessOrEqual    Operator = "<="
	Greater        Operator = ">"
	GreaterOrEqual Operator = ">="
)

// Valid reports whether op is a supported comparison.
func (op Operator) Valid() bool {
	switch op {
	case Equal, Less, LessOrEqual, Greater, GreaterOrEqual:
		return true
	}
	return false
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter restricts a query to documents whose field at Path compares to Value.
type Filter struct {
	Path  string
	Op    Operator
	Value any
}

// Where builds a Filter.
func Where(path string, op Operator, value any) Filter {
	return Filter{Path: path, Op: op, Value: value}
}

// Query selects documents from one collection.
// Filters are combined with AND. When OrderBy is set, documents that
// lack the field are left out of the result.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Direction  Direction
}

// Update sets the field at a dotted Path.
type Update struct {
	Path  string
	Value any
}

// Document is a stored record and its key.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is a document database addressed by collection and key.
type Store interface {
	// Add inserts data under a generated key and returns the key.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Create inserts data under id. It fails with ErrAlreadyExists if id is taken.
	Create(ctx context.Context, collection, id string, data map[string]any) error
	// Get fetches one document. It fails with ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Query returns the documents matching q.
	Query(ctx context.Context, q Query) ([]*Document, error)
	// Update applies updates to an existing document. It fails with ErrNotFound if absent.
	Update(ctx context.Context, collection, id string, updates []Update) error
	// Merge upserts data: absent documents are created, nested maps are merged
	// key by key and all other values replace what is stored.
	Merge(ctx context.Context, collection, id string, data map[string]any) error
	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Close releases the store's resources.
	Close() error
}
