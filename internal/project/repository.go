package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// Repository provides CRUD operations for projects.
type Repository struct {
	store store.Store
}

// NewRepository creates a project repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// List returns all projects, newest first.
func (r *Repository) List(ctx context.Context) ([]*Project, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		OrderBy:    "projectInfo.createdDate",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return fromDocuments(docs)
}

// ListByCustomer returns a customer's projects, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*Project, error) {
	docs, err := r.store.Query(ctx, store.Query{
		Collection: Collection,
		Filters:    []store.Filter{store.Where("customerId", store.Equal, customerID)},
		OrderBy:    "projectInfo.createdDate",
		Direction:  store.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects for customer %s: %w", customerID, err)
	}
	return fromDocuments(docs)
}

// Get returns a project by ID.
func (r *Repository) Get(ctx context.Context, id string) (*Project, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return fromDocument(doc)
}

// Create stores a new project and returns its ID. The creation date and
// the first timeline entry are stamped by the store.
func (r *Repository) Create(ctx context.Context, p *Project) (string, error) {
	if strings.TrimSpace(p.CustomerID) == "" {
		return "", store.Invalidf("customer ID is required")
	}

	status := p.ProjectInfo.Status
	if status == "" {
		status = StatusInquiry
	}
	if !status.IsValid() {
		return "", store.Invalidf("invalid project status: %q", status)
	}

	info := map[string]any{
		"title":       p.ProjectInfo.Title,
		"status":      string(status),
		"createdDate": store.ServerTimestamp,
	}
	if p.ProjectInfo.Type != "" {
		info["type"] = p.ProjectInfo.Type
	}
	if p.ProjectInfo.ShootDate != "" {
		info["shootDate"] = p.ProjectInfo.ShootDate
	}
	if p.ProjectInfo.Location != "" {
		info["location"] = p.ProjectInfo.Location
	}
	if p.ProjectInfo.Price != 0 {
		info["price"] = p.ProjectInfo.Price
	}

	id, err := r.store.Add(ctx, Collection, map[string]any{
		"customerId":  p.CustomerID,
		"projectInfo": info,
		"timeline":    []any{timelineEntry("Project created", DefaultActor)},
	})
	if err != nil {
		return "", fmt.Errorf("adding project: %w", err)
	}
	return id, nil
}

// Update applies ch to the project info.
func (r *Repository) Update(ctx context.Context, id string, ch Changes) error {
	var updates []store.Update
	add := func(path string, v *string) {
		if v != nil {
			updates = append(updates, store.Update{Path: path, Value: *v})
		}
	}
	add("projectInfo.title", ch.Title)
	add("projectInfo.type", ch.Type)
	add("projectInfo.shootDate", ch.ShootDate)
	add("projectInfo.location", ch.Location)
	if ch.Price != nil {
		updates = append(updates, store.Update{Path: "projectInfo.price", Value: *ch.Price})
	}
	updates = append(updates, store.Update{Path: "projectInfo.updatedDate", Value: store.ServerTimestamp})

	if err := r.store.Update(ctx, Collection, id, updates); err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	return nil
}

// UpdateStatus sets the project status and records the change on the timeline.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status, user string) error {
	if !status.IsValid() {
		return store.Invalidf("invalid project status: %q", status)
	}

	err := r.appendTimeline(ctx, id, fmt.Sprintf("Status changed to %s", status), user,
		store.Update{Path: "projectInfo.status", Value: string(status)},
	)
	if err != nil {
		return fmt.Errorf("updating project %s status: %w", id, err)
	}
	return nil
}

// AddNote records a note on the project timeline.
func (r *Repository) AddNote(ctx context.Context, id, note, user string) error {
	if strings.TrimSpace(note) == "" {
		return store.Invalidf("note text is required")
	}

	if err := r.appendTimeline(ctx, id, "Note added: "+note, user); err != nil {
		return fmt.Errorf("adding note to project %s: %w", id, err)
	}
	return nil
}

// AppendTimelineEntry adds one event to the project timeline.
//
// The timeline is read, extended in memory and written back whole. Two
// concurrent appends to the same project can therefore lose one entry.
func (r *Repository) AppendTimelineEntry(ctx context.Context, id, event, user string) error {
	if strings.TrimSpace(event) == "" {
		return store.Invalidf("timeline event is required")
	}

	if err := r.appendTimeline(ctx, id, event, user); err != nil {
		return fmt.Errorf("appending to project %s timeline: %w", id, err)
	}
	return nil
}

func (r *Repository) appendTimeline(ctx context.Context, id, event, user string, extra ...store.Update) error {
	if user == "" {
		user = DefaultActor
	}

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return err
	}

	existing, _ := doc.Data["timeline"].([]any)
	timeline := make([]any, 0, len(existing)+1)
	timeline = append(timeline, existing...)
	timeline = append(timeline, timelineEntry(event, user))

	updates := append(extra, store.Update{Path: "timeline", Value: timeline})
	return r.store.Update(ctx, Collection, id, updates)
}

// Delete removes a project.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

func timelineEntry(event, user string) map[string]any {
	return map[string]any{
		"date":  store.ServerTimestamp,
		"event": event,
		"user":  user,
	}
}

func fromDocument(doc *store.Document) (*Project, error) {
	var p Project
	if err := doc.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return &p, nil
}

func fromDocuments(docs []*store.Document) ([]*Project, error) {
	projects := make([]*Project, 0, len(docs))
	for _, doc := range docs {
		p, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}
