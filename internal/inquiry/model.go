// Package inquiry provides contact-form inquiries and their data access.
package inquiry

import "time"

// Collection is the store collection holding inquiries.
const Collection = "inquiries"

// Status tracks how far an inquiry has been handled.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Inquiry is a message sent through the site's contact form.
type Inquiry struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Service   string     `json:"service,omitempty"`
	Message   string     `json:"message"`
	Status    Status     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
