package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides data access for bookings.
type Repository struct {
	store store.Store
	now   func() time.Time
}

// NewRepository creates a booking repository. now decides what "today"
// is for ListUpcoming; nil means time.Now.
func NewRepository(s store.Store, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{store: s, now: now}
}

// List returns all bookings, latest date first.
func (r *Repository) List(ctx context.Context) ([]*Booking, error) {
	return r.query(ctx, "listing bookings")
}

// ListUpcoming returns confirmed bookings dated today (UTC) or later,
// latest date first.
func (r *Repository) ListUpcoming(ctx context.Context) ([]*Booking, error) {
	return r.query(ctx, "listing upcoming bookings",
		store.Where("date", store.GreaterOrEqual, store.DateKey(r.now())),
		store.Where("status", store.Equal, string(StatusConfirmed)),
	)
}

func (r *Repository) query(ctx context.Context, op string, filters ...store.Filter) ([]*Booking, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		Filters:    filters,
		OrderBy:    "date",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := make([]*Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// Get returns a booking by ID.
func (r *Repository) Get(ctx context.Context, id string) (*Booking, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("getting booking %s: %w", id, err)
	}
	return fromDocument(doc)
}

// Create stores a new booking and returns its ID. Status defaults to pending.
func (r *Repository) Create(ctx context.Context, b *Booking) (string, error) {
	if strings.TrimSpace(b.Name) == "" {
		return "", store.Invalidf("name is required")
	}
	if err := validateDate(b.Date); err != nil {
		return "", err
	}

	status := b.Status
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return "", store.Invalidf("invalid booking status: %q", status)
	}

	data := map[string]any{
		"name":      b.Name,
		"email":     b.Email,
		"date":      b.Date,
		"status":    string(status),
		"createdAt": store.ServerTimestamp,
	}
	optional := map[string]string{
		"customerId": b.CustomerID,
		"phone":      b.Phone,
		"service":    b.Service,
		"time":       b.Time,
		"notes":      b.Notes,
	}
	for k, v := range optional {
		if v != "" {
			data[k] = v
		}
	}

	id, err := r.store.Add(ctx, Collection, data)
	if err != nil {
		return "", fmt.Errorf("adding booking: %w", err)
	}
	return id, nil
}

// Update applies ch and stamps updatedAt.
func (r *Repository) Update(ctx context.Context, id string, ch Changes) error {
	var updates []store.Update
	if ch.Date != nil {
		if err := validateDate(*ch.Date); err != nil {
			return err
		}
		updates = append(updates, store.Update{Path: "date", Value: *ch.Date})
	}
	if ch.Time != nil {
		updates = append(updates, store.Update{Path: "time", Value: *ch.Time})
	}
	if ch.Service != nil {
		updates = append(updates, store.Update{Path: "service", Value: *ch.Service})
	}
	if ch.Notes != nil {
		updates = append(updates, store.Update{Path: "notes", Value: *ch.Notes})
	}
	updates = append(updates, store.Update{Path: "updatedAt", Value: store.ServerTimestamp})

	if err := r.store.Update(ctx, Collection, id, updates); err != nil {
		return fmt.Errorf("updating booking %s: %w", id, err)
	}
	return nil
}

// UpdateStatus sets the booking status and stamps updatedAt.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.IsValid() {
		return store.Invalidf("invalid booking status: %q", status)
	}

	err := r.store.Update(ctx, Collection, id, []store.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: store.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("updating booking %s status: %w", id, err)
	}
	return nil
}

// Delete removes a booking.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting booking %s: %w", id, err)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		return store.Invalidf("invalid booking date %q: want YYYY-MM-DD", date)
	}
	return nil
}

func fromDocument(doc *store.Document) (*Booking, error) {
	var b Booking
	if err := doc.DataTo(&b); err != nil {
		return nil, err
	}
	b.ID = doc.ID
	return &b, nil
}
