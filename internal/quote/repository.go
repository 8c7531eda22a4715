package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides data access for quotes.
type Repository struct {
	store store.Store
}

// NewRepository creates a quote repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns all quotes, newest first.
func (r *Repository) List(ctx context.Context) ([]*Quote, error) {
	return r.query(ctx, "listing quotes")
}

// ListPending returns quotes awaiting an answer, newest first.
func (r *Repository) ListPending(ctx context.Context) ([]*Quote, error) {
	return r.query(ctx, "listing pending quotes", store.Where("status", store.Equal, string(StatusPending)))
}

func (r *Repository) query(ctx context.Context, op string, filters ...store.Filter) ([]*Quote, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		Filters:    filters,
		OrderBy:    "timestamp",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	quotes := make([]*Quote, 0, len(docs))
	for _, doc := range docs {
		q, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Get returns a quote by ID.
func (r *Repository) Get(ctx context.Context, id string) (*Quote, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote %s: %w", id, err)
	}
	return fromDocument(doc)
}

// Create stores a new pending quote and returns its ID.
func (r *Repository) Create(ctx context.Context, q *Quote) (string, error) {
	if strings.TrimSpace(q.Name) == "" {
		return "", store.Invalidf("name is required")
	}
	if strings.TrimSpace(q.Service) == "" {
		return "", store.Invalidf("service is required")
	}

	data := map[string]any{
		"name":      q.Name,
		"email":     q.Email,
		"service":   q.Service,
		"status":    string(StatusPending),
		"timestamp": store.ServerTimestamp,
	}
	for k, v := range map[string]string{
		"phone":     q.Phone,
		"eventDate": q.EventDate,
		"budget":    q.Budget,
		"details":   q.Details,
	} {
		if v != "" {
			data[k] = v
		}
	}
	if q.Amount != 0 {
		data["amount"] = q.Amount
	}

	id, err := r.store.Add(ctx, Collection, data)
	if err != nil {
		return "", fmt.Errorf("adding quote: %w", err)
	}
	return id, nil
}

// Update applies ch and stamps updatedAt.
func (r *Repository) Update(ctx context.Context, id string, ch Changes) error {
	var updates []store.Update
	if ch.Amount != nil {
		if *ch.Amount < 0 {
			return store.Invalidf("amount must not be negative")
		}
		updates = append(updates, store.Update{Path: "amount", Value: *ch.Amount})
	}
	if ch.Details != nil {
		updates = append(updates, store.Update{Path: "details", Value: *ch.Details})
	}
	updates = append(updates, store.Update{Path: "updatedAt", Value: store.ServerTimestamp})

	if err := r.store.Update(ctx, Collection, id, updates); err != nil {
		return fmt.Errorf("updating quote %s: %w", id, err)
	}
	return nil
}

// UpdateStatus sets the quote status and stamps updatedAt.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.IsValid() {
		return store.Invalidf("invalid quote status: %q", status)
	}

	err := r.store.Update(ctx, Collection, id, []store.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: store.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("updating quote %s status: %w", id, err)
	}
	return nil
}

// Delete removes a quote.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting quote %s: %w", id, err)
	}
	return nil
}

func fromDocument(doc *store.Document) (*Quote, error) {
	var q Quote
	if err := doc.DataTo(&q); err != nil {
		return nil, err
	}
	q.ID = doc.ID
	return &q, nil
}
