// Package project provides the project domain model and data access.
package project

import "time"

// Collection is the store collection holding projects.
const Collection = "projects"

// DefaultActor is recorded on timeline entries when no user is given.
const DefaultActor = "Admin"

// Status is where a project is in the studio workflow.
type Status string

const (
	StatusInquiry    Status = "inquiry"
	StatusBooked     Status = "booked"
	StatusInProgress Status = "in_progress"
	StatusEditing    Status = "editing"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatuses is the set of allowed project statuses.
var ValidStatuses = []Status{
	StatusInquiry, StatusBooked, StatusInProgress, StatusEditing,
	StatusDelivered, StatusCompleted, StatusCancelled,
}

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Info describes the shoot.
type Info struct {
	Title       string     `json:"title"`
	Type        string     `json:"type,omitempty"`
	Status      Status     `json:"status"`
	ShootDate   string     `json:"shootDate,omitempty"` // YYYY-MM-DD
	Location    string     `json:"location,omitempty"`
	Price       float64    `json:"price,omitempty"`
	CreatedDate time.Time  `json:"createdDate"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
}

// TimelineEntry records a status change or note.
type TimelineEntry struct {
	Date  time.Time `json:"date"`
	Event string    `json:"event"`
	User  string    `json:"user"`
}

// Project is a piece of work for one customer.
type Project struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customerId"`
	ProjectInfo Info            `json:"projectInfo"`
	Timeline    []TimelineEntry `json:"timeline"`
}

// Changes is a partial update of the project info. Nil fields are left
// untouched. Status goes through UpdateStatus so it lands on the timeline.
type Changes struct {
	Title     *string  `json:"title,omitempty"`
	Type      *string  `json:"type,omitempty"`
	ShootDate *string  `json:"shootDate,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}
