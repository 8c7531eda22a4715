package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides CRUD operations for customers.
type Repository struct {
	store store.Store
}

// NewRepository creates a customer repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns all customers, most recently contacted first.
func (r *Repository) List(ctx context.Context) ([]*Customer, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		OrderBy:    "engagement.lastContact",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return fromDocuments(docs)
}

// Get returns a customer by ID.
func (r *Repository) Get(ctx context.Context, id string) (*Customer, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer %s: %w", id, err)
	}
	return fromDocument(doc)
}

// Search returns customers whose name, email or phone contains text,
// ignoring case. It scans the whole collection.
func (r *Repository) Search(ctx context.Context, text string) ([]*Customer, error) {
	docs, err := r.store.Query(ctx, store.Query{Collection: Collection})
	if err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}

	all, err := fromDocuments(docs)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	matches := make([]*Customer, 0)
	for _, c := range all {
		if c.matches(needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (c *Customer) matches(needle string) bool {
	for _, field := range []string{c.PersonalInfo.Name, c.PersonalInfo.Email, c.PersonalInfo.Phone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Create stores a new customer and returns its ID. First and last
// contact are stamped by the store.
func (r *Repository) Create(ctx context.Context, c *Customer) (string, error) {
	if strings.TrimSpace(c.PersonalInfo.Name) == "" {
		return "", store.Invalidf("customer name is required")
	}

	engagement := map[string]any{
		"firstContact": store.ServerTimestamp,
		"lastContact":  store.ServerTimestamp,
	}
	if c.Engagement.Source != "" {
		engagement["source"] = c.Engagement.Source
	}

	data := map[string]any{
		"personalInfo": map[string]any{
			"name":  c.PersonalInfo.Name,
			"email": c.PersonalInfo.Email,
			"phone": c.PersonalInfo.Phone,
		},
		"engagement": engagement,
	}
	if c.Notes != "" {
		data["notes"] = c.Notes
	}
	if len(c.Tags) > 0 {
		data["tags"] = c.Tags
	}

	id, err := r.store.Add(ctx, Collection, data)
	if err != nil {
		return "", fmt.Errorf("adding customer: %w", err)
	}
	return id, nil
}

// Update applies ch and refreshes the last contact time.
func (r *Repository) Update(ctx context.Context, id string, ch Changes) error {
	var updates []store.Update
	add := func(path string, v *string) {
		if v != nil {
			updates = append(updates, store.Update{Path: path, Value: *v})
		}
	}
	add("personalInfo.name", ch.Name)
	add("personalInfo.email", ch.Email)
	add("personalInfo.phone", ch.Phone)
	add("engagement.source", ch.Source)
	add("notes", ch.Notes)
	if ch.Tags != nil {
		updates = append(updates, store.Update{Path: "tags", Value: *ch.Tags})
	}
	updates = append(updates, store.Update{Path: "engagement.lastContact", Value: store.ServerTimestamp})

	if err := r.store.Update(ctx, Collection, id, updates); err != nil {
		return fmt.Errorf("updating customer %s: %w", id, err)
	}
	return nil
}

// Delete removes a customer. Their projects are left in place.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting customer %s: %w", id, err)
	}
	return nil
}

func fromDocument(doc *store.Document) (*Customer, error) {
	var c Customer
	if err := doc.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = doc.ID
	return &c, nil
}

func fromDocuments(docs []*store.Document) ([]*Customer, error) {
	customers := make([]*Customer, 0, len(docs))
	for _, doc := range docs {
		c, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
