package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evcraddock/hvr-studio/internal/db/dbtest"
	"github.com/evcraddock/hvr-studio/internal/store"
)

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	before := time.Now()

	id, err := repo.Create(ctx, &Customer{
		PersonalInfo: PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100"},
		Engagement:   Engagement{Source: "instagram"},
		Notes:        "prefers evenings",
		Tags:         []string{"wedding"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	c, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.ID != id {
		t.Errorf("id = %q, want %q", c.ID, id)
	}
	if c.PersonalInfo.Name != "Jane Doe" || c.PersonalInfo.Email != "jane@example.com" || c.PersonalInfo.Phone != "555-0100" {
		t.Errorf("personalInfo = %+v", c.PersonalInfo)
	}
	if c.Engagement.Source != "instagram" {
		t.Errorf("source = %q, want instagram", c.Engagement.Source)
	}
	if c.Notes != "prefers evenings" || len(c.Tags) != 1 || c.Tags[0] != "wedding" {
		t.Errorf("notes/tags = %q %v", c.Notes, c.Tags)
	}
	if !c.Engagement.FirstContact.After(before) {
		t.Errorf("firstContact %v should be after %v", c.Engagement.FirstContact, before)
	}
	if !c.Engagement.LastContact.After(before) {
		t.Errorf("lastContact %v should be after %v", c.Engagement.LastContact, before)
	}
}

func TestCreateRequiresName(t *testing.T) {
	repo := testRepo(t)

	for _, name := range []string{"", "   "} {
		_, err := repo.Create(context.Background(), &Customer{PersonalInfo: PersonalInfo{Name: name, Email: "x@example.com"}})
		if !errors.Is(err, store.ErrInvalid) {
			t.Errorf("name %q: err = %v, want ErrInvalid", name, err)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRefreshesLastContact(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane Doe", "jane@example.com", "555-0100")
	orig, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	phone := "555-0199"
	if err := repo.Update(ctx, id, Changes{Phone: &phone}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PersonalInfo.Phone != phone {
		t.Errorf("phone = %q, want %q", got.PersonalInfo.Phone, phone)
	}
	if got.PersonalInfo.Name != "Jane Doe" {
		t.Errorf("name = %q, untouched field changed", got.PersonalInfo.Name)
	}
	if got.Engagement.LastContact.Before(orig.Engagement.LastContact) {
		t.Errorf("lastContact moved backwards: %v -> %v", orig.Engagement.LastContact, got.Engagement.LastContact)
	}
	if !got.Engagement.FirstContact.Equal(orig.Engagement.FirstContact) {
		t.Errorf("firstContact changed: %v -> %v", orig.Engagement.FirstContact, got.Engagement.FirstContact)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := testRepo(t)

	name := "Nobody"
	err := repo.Update(context.Background(), "missing", Changes{Name: &name})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListOrderByLastContact(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "First", "first@example.com", "1")
	mustCreate(t, repo, "Second", "second@example.com", "2")
	mustCreate(t, repo, "Third", "third@example.com", "3")

	// Touching the oldest customer moves it to the front.
	if err := repo.Update(ctx, first, Changes{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	customers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"First", "Third", "Second"}
	if len(customers) != len(want) {
		t.Fatalf("got %d customers, want %d", len(customers), len(want))
	}
	for i, name := range want {
		if customers[i].PersonalInfo.Name != name {
			t.Errorf("customer %d = %q, want %q", i, customers[i].PersonalInfo.Name, name)
		}
	}
}

func TestSearch(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "John Smith", "jane@example.com", "555-0100")
	mustCreate(t, repo, "Alice Jones", "alice@example.com", "555-0200")
	mustCreate(t, repo, "Bob Stone", "bob@example.com", "555-0300")

	tests := []struct {
		name  string
		text  string
		names []string
	}{
		{"matches email not name", "jane", []string{"John Smith"}},
		{"case insensitive name", "ALICE", []string{"Alice Jones"}},
		{"matches phone", "0300", []string{"Bob Stone"}},
		{"matches several", "example.com", []string{"John Smith", "Alice Jones", "Bob Stone"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.text)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.names) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.names))
			}
			found := map[string]bool{}
			for _, c := range got {
				found[c.PersonalInfo.Name] = true
			}
			for _, name := range tt.names {
				if !found[name] {
					t.Errorf("expected %q in results", name)
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane Doe", "jane@example.com", "555-0100")
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.Get(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbtest.Open(t, nil))
}

func mustCreate(t *testing.T, repo *Repository, name, email, phone string) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &Customer{
		PersonalInfo: PersonalInfo{Name: name, Email: email, Phone: phone},
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return id
}
