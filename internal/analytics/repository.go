package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository records and reads daily counters.
type Repository struct {
	store store.Store
	now   func() time.Time
}

// NewRepository creates an analytics repository. now picks the day that
// counters are recorded under; nil means time.Now.
func NewRepository(s store.Store, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{store: s, now: now}
}

// RecordPageView counts one view of page on today's document.
func (r *Repository) RecordPageView(ctx context.Context, page string) error {
	if strings.TrimSpace(page) == "" {
		return store.Invalidf("page name is required")
	}
	return r.increment(ctx, "pageViews", "pages", page)
}

// RecordConversion counts one conversion of kind on today's document.
func (r *Repository) RecordConversion(ctx context.Context, kind string) error {
	if strings.TrimSpace(kind) == "" {
		return store.Invalidf("conversion type is required")
	}
	return r.increment(ctx, "conversions", "conversionTypes", kind)
}

func (r *Repository) increment(ctx context.Context, total, breakdown, key string) error {
	day := store.DateKey(r.now())
	err := r.store.Merge(ctx, Collection, day, map[string]any{
		total:         store.Increment(1),
		breakdown:     map[string]any{key: store.Increment(1)},
		"lastUpdated": store.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("recording %s for %s: %w", total, day, err)
	}
	return nil
}

// Range returns the days from start to end inclusive, oldest first.
// Days with no activity have no document and are skipped.
func (r *Repository) Range(ctx context.Context, start, end string) ([]*Day, error) {
	for _, d := range []string{start, end} {
		if _, err := time.Parse(store.DateLayout, d); err != nil {
			return nil, store.Invalidf("invalid date %q: want YYYY-MM-DD", d)
		}
	}

	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		Filters: []store.Filter{
			store.Where(store.DocumentID, store.GreaterOrEqual, start),
			store.Where(store.DocumentID, store.LessOrEqual, end),
		},
		OrderBy:   store.DocumentID,
		Direction: store.Asc,
	})
	if err != nil {
		return nil, fmt.Errorf("reading analytics %s..%s: %w", start, end, err)
	}

	days := make([]*Day, 0, len(docs))
	for _, doc := range docs {
		var d Day
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		d.Date = doc.ID
		days = append(days, &d)
	}
	return days, nil
}
