// Package fsstore implements store.Store on Cloud Firestore.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// ClientFun returns the Firestore client to use for a request.
type ClientFun func(ctx context.Context) *firestore.Client

// Store is a store.Store backed by Firestore.
type Store struct {
	clientFun ClientFun
	closer    func() error
	now       func() time.Time
}

var _ store.Store = (*Store)(nil)

// New connects to Firestore in the given project.
func New(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}

	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	s := NewWithClient(func(ctx context.Context) *firestore.Client {
		return fs
	})
	s.closer = fs.Close

	return s, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(fun ClientFun) *Store {
	return &Store{
		clientFun: fun,
		closer:    func() error { return nil },
		now:       time.Now,
	}
}

func (s *Store) collection(ctx context.Context, name string) *firestore.CollectionRef {
	return s.clientFun(ctx).Collection(name)
}

// Add inserts data under a generated key.
func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.collection(ctx, collection).Add(ctx, s.toFirestore(data))
	if err != nil {
		return "", fmt.Errorf("adding %s document: %w", collection, mapError(err))
	}
	return ref.ID, nil
}

// Create inserts data under id.
func (s *Store) Create(ctx context.Context, collection, id string, data map[string]any) error {
	if _, err := s.collection(ctx, collection).Doc(id).Create(ctx, s.toFirestore(data)); err != nil {
		return fmt.Errorf("creating %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

// Get fetches one document.
func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	snap, err := s.collection(ctx, collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", collection, id, mapError(err))
	}
	return &store.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Query returns the documents matching q.
func (s *Store) Query(ctx context.Context, q store.Query) ([]*store.Document, error) {
	fq, err := s.buildQuery(ctx, q)
	if err != nil {
		return nil, err
	}

	snaps, err := fq.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", q.Collection, mapError(err))
	}

	docs := make([]*store.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, &store.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// Update applies dotted-path updates to an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, updates []store.Update) error {
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for _, u := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: u.Path, Value: s.toFirestoreValue(u.Value, false)})
	}

	if _, err := s.collection(ctx, collection).Doc(id).Update(ctx, fsUpdates); err != nil {
		return fmt.Errorf("updating %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

// Merge upserts data into the document.
func (s *Store) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	if _, err := s.collection(ctx, collection).Doc(id).Set(ctx, s.toFirestore(data), firestore.MergeAll); err != nil {
		return fmt.Errorf("merging %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.collection(ctx, collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, mapError(err))
	}
	return nil
}

// Close closes the client if this store created it.
func (s *Store) Close() error {
	return s.closer()
}

func (s *Store) buildQuery(ctx context.Context, q store.Query) (firestore.Query, error) {
	coll := s.collection(ctx, q.Collection)
	fq := coll.Query

	for _, f := range q.Filters {
		if !f.Op.Valid() {
			return fq, fmt.Errorf("unsupported operator %q", f.Op)
		}
		if f.Path == store.DocumentID {
			id, ok := f.Value.(string)
			if !ok {
				return fq, fmt.Errorf("document ID filter needs a string, got %T", f.Value)
			}
			fq = fq.Where(firestore.DocumentID, string(f.Op), coll.Doc(id))
			continue
		}
		fq = fq.Where(f.Path, string(f.Op), f.Value)
	}

	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Direction == store.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}

	return fq, nil
}

func (s *Store) toFirestore(data map[string]any) map[string]any {
	return s.toFirestoreValue(data, false).(map[string]any)
}

// toFirestoreValue swaps store transforms for their Firestore sentinels.
// Firestore rejects transforms inside arrays, so server timestamps there
// take the backend clock instead.
func (s *Store) toFirestoreValue(v any, inArray bool) any {
	switch x := v.(type) {
	case store.IncrementOp:
		if inArray {
			return x.N
		}
		return firestore.Increment(x.N)
	case store.Transform:
		if store.IsServerTimestamp(x) {
			if inArray {
				return s.now().UTC()
			}
			return firestore.ServerTimestamp
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = s.toFirestoreValue(val, inArray)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = s.toFirestoreValue(val, true)
		}
		return out
	}
	return v
}

// mapError translates Firestore status codes into store sentinels.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errors.Join(store.ErrNotFound, err)
	case codes.AlreadyExists:
		return errors.Join(store.ErrAlreadyExists, err)
	}
	return err
}
