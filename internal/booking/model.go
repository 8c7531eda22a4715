// Package booking provides session bookings and their data access.
package booking

import "time"

// Collection is the store collection holding bookings.
const Collection = "bookings"

// Status is the state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a reserved session date.
type Booking struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Service    string     `json:"service,omitempty"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Time       string     `json:"time,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Service *string `json:"service,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}
