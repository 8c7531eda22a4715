package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides data access for coupons.
type Repository struct {
	store store.Store
	now   func() time.Time
}

// NewRepository creates a coupon repository. now decides the date
// coupons are validated against; nil means time.Now.
func NewRepository(s store.Store, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{store: s, now: now}
}

// NormalizeCode returns the document key for a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// List returns all coupons, newest first.
func (r *Repository) List(ctx context.Context) ([]*Coupon, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		OrderBy:    "createdAt",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}

	coupons := make([]*Coupon, 0, len(docs))
	for _, doc := range docs {
		c, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

// Get returns a coupon by code, in any case.
func (r *Repository) Get(ctx context.Context, code string) (*Coupon, error) {
	key := NormalizeCode(code)
	doc, err := r.store.Get(ctx, Collection, key)
	if err != nil {
		return nil, fmt.Errorf("getting coupon %s: %w", key, err)
	}
	return fromDocument(doc)
}

// Create stores a new coupon under its uppercase code. It fails with
// store.ErrAlreadyExists if the code is taken.
func (r *Repository) Create(ctx context.Context, c *Coupon) (string, error) {
	key := NormalizeCode(c.Code)
	if key == "" {
		return "", store.Invalidf("coupon code is required")
	}
	if err := validate(c); err != nil {
		return "", err
	}

	data := map[string]any{
		"usedCount": int64(0),
		"createdAt": store.ServerTimestamp,
	}
	if c.Description != "" {
		data["description"] = c.Description
	}
	if c.DiscountType != "" {
		data["discountType"] = string(c.DiscountType)
		data["discountValue"] = c.DiscountValue
	}
	if c.ValidFrom != "" {
		data["validFrom"] = c.ValidFrom
	}
	if c.ValidUntil != "" {
		data["validUntil"] = c.ValidUntil
	}
	if c.UsageLimit != nil {
		data["usageLimit"] = *c.UsageLimit
	}

	if err := r.store.Create(ctx, Collection, key, data); err != nil {
		return "", fmt.Errorf("creating coupon %s: %w", key, err)
	}
	return key, nil
}

func validate(c *Coupon) error {
	for name, date := range map[string]string{"validFrom": c.ValidFrom, "validUntil": c.ValidUntil} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(store.DateLayout, date); err != nil {
			return store.Invalidf("invalid %s %q: want YYYY-MM-DD", name, date)
		}
	}
	if c.ValidFrom != "" && c.ValidUntil != "" && c.ValidFrom > c.ValidUntil {
		return store.Invalidf("validFrom %s is after validUntil %s", c.ValidFrom, c.ValidUntil)
	}

	switch c.DiscountType {
	case "":
	case DiscountPercent:
		if c.DiscountValue <= 0 || c.DiscountValue > 100 {
			return store.Invalidf("percent discount must be in (0, 100]")
		}
	case DiscountFixed:
		if c.DiscountValue <= 0 {
			return store.Invalidf("fixed discount must be positive")
		}
	default:
		return store.Invalidf("invalid discount type: %q", c.DiscountType)
	}

	if c.UsageLimit != nil && *c.UsageLimit < 0 {
		return store.Invalidf("usage limit must not be negative")
	}
	return nil
}

// Validate checks a code against today's date and its usage count. The
// first failing check decides the reason. A missing coupon is a normal
// invalid result; only store failures are returned as errors.
func (r *Repository) Validate(ctx context.Context, code string) (*Validation, error) {
	c, err := r.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return &Validation{Reason: ReasonInvalidCode}, nil
	}
	if err != nil {
		return nil, err
	}

	today := store.DateKey(r.now())
	switch {
	case c.ValidFrom != "" && c.ValidFrom > today:
		return &Validation{Reason: ReasonNotYetValid}, nil
	case c.ValidUntil != "" && c.ValidUntil < today:
		return &Validation{Reason: ReasonExpired}, nil
	case c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit:
		return &Validation{Reason: ReasonLimitReached}, nil
	}
	return &Validation{Valid: true, Coupon: c}, nil
}

// Redeem adds one use to the coupon. It does not validate first, so a
// caller racing another redemption can push usedCount past the limit.
func (r *Repository) Redeem(ctx context.Context, code string) error {
	key := NormalizeCode(code)
	err := r.store.Update(ctx, Collection, key, []store.Update{
		{Path: "usedCount", Value: store.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("redeeming coupon %s: %w", key, err)
	}
	return nil
}

// Delete removes a coupon.
func (r *Repository) Delete(ctx context.Context, code string) error {
	key := NormalizeCode(code)
	if err := r.store.Delete(ctx, Collection, key); err != nil {
		return fmt.Errorf("deleting coupon %s: %w", key, err)
	}
	return nil
}

func fromDocument(doc *store.Document) (*Coupon, error) {
	var c Coupon
	if err := doc.DataTo(&c); err != nil {
		return nil, err
	}
	c.Code = doc.ID
	return &c, nil
}
