// Package coupon provides discount coupons, their validation and redemption.
package coupon

import "time"

// Collection is the store collection holding coupons, keyed by code.
const Collection = "coupons"

// Validation failure reasons, in the order they are checked.
const (
	ReasonInvalidCode  = "Invalid coupon code"
	ReasonNotYetValid  = "Coupon not yet valid"
	ReasonExpired      = "Coupon has expired"
	ReasonLimitReached = "Coupon usage limit reached"
)

// DiscountType says how DiscountValue is applied.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Coupon is a discount code. ValidFrom and ValidUntil are inclusive
// YYYY-MM-DD dates; an empty bound is open. A nil UsageLimit means the
// coupon can be used any number of times.
type Coupon struct {
	Code          string       `json:"code"`
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discountType,omitempty"`
	DiscountValue float64      `json:"discountValue,omitempty"`
	ValidFrom     string       `json:"validFrom,omitempty"`
	ValidUntil    string       `json:"validUntil,omitempty"`
	UsageLimit    *int64       `json:"usageLimit,omitempty"`
	UsedCount     int64        `json:"usedCount"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Validation is the outcome of checking a code. Reason is set when the
// coupon is not valid; Coupon when it is.
type Validation struct {
	Valid  bool    `json:"valid"`
	Reason string  `json:"reason,omitempty"`
	Coupon *Coupon `json:"coupon,omitempty"`
}
