package quote

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

	id, err := repo.Create(ctx, &Quote{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Service:   "wedding",
		EventDate: "2026-09-12",
		Budget:    "2000-3000",
		Details:   "Ceremony and reception",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	q, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.ID != id || q.Name != "Jane Doe" || q.Service != "wedding" || q.EventDate != "2026-09-12" || q.Budget != "2000-3000" || q.Details != "Ceremony and reception" {
		t.Errorf("quote = %+v", q)
	}
	if q.Status != StatusPending {
		t.Errorf("status = %q, want pending", q.Status)
	}
	if !q.Timestamp.After(before) {
		t.Errorf("timestamp %v should be after %v", q.Timestamp, before)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &Quote{Service: "wedding"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := repo.Create(ctx, &Quote{Name: "Jane"}); err == nil {
		t.Error("expected error for missing service")
	}
}

func TestListAndPending(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "First")
	second := mustCreate(t, repo, "Second")
	mustCreate(t, repo, "Third")

	if err := repo.UpdateStatus(ctx, second, StatusSent); err != nil {
		t.Fatalf("update status: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertNames(t, all, []string{"Third", "Second", "First"})

	pending, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	assertNames(t, pending, []string{"Third", "First"})
}

func TestUpdate(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane")
	amount := 2750.0
	if err := repo.Update(ctx, id, Changes{Amount: &amount}); err != nil {
		t.Fatalf("update: %v", err)
	}
	q, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Amount != amount || q.UpdatedAt == nil {
		t.Errorf("amount=%v updatedAt=%v", q.Amount, q.UpdatedAt)
	}

	negative := -1.0
	if err := repo.Update(ctx, id, Changes{Amount: &negative}); err == nil {
		t.Error("expected error for negative amount")
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane")
	if err := repo.UpdateStatus(ctx, id, "lost"); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := repo.UpdateStatus(ctx, "missing", StatusSent); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane")
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

func mustCreate(t *testing.T, repo *Repository, name string) string {
	t.Helper()
	id, err := repo.Create(context.Background(), &Quote{Name: name, Email: "someone@example.com", Service: "portrait"})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return id
}

func assertNames(t *testing.T, quotes []*Quote, want []string) {
	t.Helper()
	if len(quotes) != len(want) {
		t.Fatalf("got %d quotes, want %d", len(quotes), len(want))
	}
	for i, name := range want {
		if quotes[i].Name != name {
			t.Errorf("quote %d = %q, want %q", i, quotes[i].Name, name)
		}
	}
}
