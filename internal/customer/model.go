// Package customer provides the customer domain model and data access.
package customer

import "time"

// Collection is the store collection holding customers.
const Collection = "customers"

// PersonalInfo identifies a customer.
type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Engagement tracks when the studio has been in contact with a customer.
// Both timestamps are assigned by the store.
type Engagement struct {
	FirstContact time.Time `json:"firstContact"`
	LastContact  time.Time `json:"lastContact"`
	Source       string    `json:"source,omitempty"`
}

// Customer is a studio client.
type Customer struct {
	ID           string       `json:"id"`
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Engagement   Engagement   `json:"engagement"`
	Notes        string       `json:"notes,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Name   *string   `json:"name,omitempty"`
	Email  *string   `json:"email,omitempty"`
	Phone  *string   `json:"phone,omitempty"`
	Source *string   `json:"source,omitempty"`
	Notes  *string   `json:"notes,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}
