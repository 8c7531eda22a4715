package inquiry

import (
	"context"
	"fmt"
	"strings"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides data access for inquiries.
type Repository struct {
	store store.Store
}

// NewRepository creates an inquiry repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns all inquiries, newest first.
func (r *Repository) List(ctx context.Context) ([]*Inquiry, error) {
	return r.query(ctx, "listing inquiries")
}

// ListUnread returns inquiries still in the new state, newest first.
func (r *Repository) ListUnread(ctx context.Context) ([]*Inquiry, error) {
	return r.query(ctx, "listing unread inquiries", store.Where("status", store.Equal, string(StatusNew)))
}

func (r *Repository) query(ctx context.Context, op string, filters ...store.Filter) ([]*Inquiry, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		Filters:    filters,
		OrderBy:    "timestamp",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	inquiries := make([]*Inquiry, 0, len(docs))
	for _, doc := range docs {
		i, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, nil
}

// Get returns an inquiry by ID.
func (r *Repository) Get(ctx context.Context, id string) (*Inquiry, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("getting inquiry %s: %w", id, err)
	}
	return fromDocument(doc)
}

// Create stores a new inquiry in the new state and returns its ID.
func (r *Repository) Create(ctx context.Context, i *Inquiry) (string, error) {
	if strings.TrimSpace(i.Name) == "" {
		return "", store.Invalidf("name is required")
	}
	if strings.TrimSpace(i.Email) == "" {
		return "", store.Invalidf("email is required")
	}

	data := map[string]any{
		"name":      i.Name,
		"email":     i.Email,
		"message":   i.Message,
		"status":    string(StatusNew),
		"timestamp": store.ServerTimestamp,
	}
	if i.Phone != "" {
		data["phone"] = i.Phone
	}
	if i.Service != "" {
		data["service"] = i.Service
	}

	id, err := r.store.Add(ctx, Collection, data)
	if err != nil {
		return "", fmt.Errorf("adding inquiry: %w", err)
	}
	return id, nil
}

// MarkRead moves a new inquiry to read and stamps readAt. Inquiries that
// have already left the new state are not touched.
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	i, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if i.Status != StatusNew {
		return nil
	}

	err = r.store.Update(ctx, Collection, id, []store.Update{
		{Path: "status", Value: string(StatusRead)},
		{Path: "readAt", Value: store.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("marking inquiry %s read: %w", id, err)
	}
	return nil
}

// UpdateStatus sets the inquiry status.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.IsValid() {
		return store.Invalidf("invalid inquiry status: %q", status)
	}

	err := r.store.Update(ctx, Collection, id, []store.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: store.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("updating inquiry %s status: %w", id, err)
	}
	return nil
}

// Delete removes an inquiry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting inquiry %s: %w", id, err)
	}
	return nil
}

func fromDocument(doc *store.Document) (*Inquiry, error) {
	var i Inquiry
	if err := doc.DataTo(&i); err != nil {
		return nil, err
	}
	i.ID = doc.ID
	return &i, nil
}
