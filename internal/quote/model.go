// Package quote provides quote requests and their data access.
package quote

import "time"

// Collection is the store collection holding quotes.
const Collection = "quotes"

// Status is the state of a quote.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Quote is a pricing request and the studio's answer to it.
type Quote struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Service   string     `json:"service"`
	EventDate string     `json:"eventDate,omitempty"` // YYYY-MM-DD
	Budget    string     `json:"budget,omitempty"`
	Details   string     `json:"details,omitempty"`
	Amount    float64    `json:"amount,omitempty"`
	Status    Status     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Amount  *float64 `json:"amount,omitempty"`
	Details *string  `json:"details,omitempty"`
}
