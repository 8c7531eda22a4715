// Package analytics keeps per-day page view and conversion counters.
package analytics

import "time"

// Collection is the store collection holding one document per UTC day,
// keyed by YYYY-MM-DD.
const Collection = "analytics"

// Day is the counters for one calendar day.
type Day struct {
	Date            string           `json:"date"`
	PageViews       int64            `json:"pageViews"`
	Pages           map[string]int64 `json:"pages,omitempty"`
	Conversions     int64            `json:"conversions"`
	ConversionTypes map[string]int64 `json:"conversionTypes,omitempty"`
	LastUpdated     *time.Time       `json:"lastUpdated,omitempty"`
}
