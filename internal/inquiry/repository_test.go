package inquiry

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

	id, err := repo.Create(ctx, &Inquiry{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Service: "wedding",
		Message: "Are you free in June?",
		Status:  StatusArchived, // ignored on create
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	i, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if i.ID != id || i.Name != "Jane Doe" || i.Email != "jane@example.com" || i.Phone != "555-0100" || i.Service != "wedding" || i.Message != "Are you free in June?" {
		t.Errorf("inquiry = %+v", i)
	}
	if i.Status != StatusNew {
		t.Errorf("status = %q, want new", i.Status)
	}
	if !i.Timestamp.After(before) {
		t.Errorf("timestamp %v should be after %v", i.Timestamp, before)
	}
	if i.ReadAt != nil {
		t.Errorf("readAt = %v, want nil", i.ReadAt)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &Inquiry{Email: "x@example.com"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := repo.Create(ctx, &Inquiry{Name: "X"}); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestListAndUnread(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "First")
	mustCreate(t, repo, "Second")
	mustCreate(t, repo, "Third")

	if err := repo.MarkRead(ctx, first); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertNames(t, all, []string{"Third", "Second", "First"})

	unread, err := repo.ListUnread(ctx)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	assertNames(t, unread, []string{"Third", "Second"})
}

func TestMarkReadOnce(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane")
	if err := repo.MarkRead(ctx, id); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	i, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if i.Status != StatusRead || i.ReadAt == nil {
		t.Fatalf("after mark read: status=%q readAt=%v", i.Status, i.ReadAt)
	}
	if !i.ReadAt.After(i.Timestamp) {
		t.Errorf("readAt %v should be after timestamp %v", i.ReadAt, i.Timestamp)
	}
	firstRead := *i.ReadAt

	if err := repo.MarkRead(ctx, id); err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	again, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !again.ReadAt.Equal(firstRead) {
		t.Errorf("readAt restamped: %v -> %v", firstRead, again.ReadAt)
	}
}

func TestMarkReadNotFound(t *testing.T) {
	repo := testRepo(t)

	err := repo.MarkRead(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id := mustCreate(t, repo, "Jane")
	if err := repo.UpdateStatus(ctx, id, StatusReplied); err != nil {
		t.Fatalf("update status: %v", err)
	}
	i, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if i.Status != StatusReplied || i.UpdatedAt == nil {
		t.Errorf("status=%q updatedAt=%v", i.Status, i.UpdatedAt)
	}

	if err := repo.UpdateStatus(ctx, id, "spam"); err == nil {
		t.Error("expected error for invalid status")
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
	id, err := repo.Create(context.Background(), &Inquiry{Name: name, Email: "someone@example.com", Message: "hello"})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return id
}

func assertNames(t *testing.T, inquiries []*Inquiry, want []string) {
	t.Helper()
	if len(inquiries) != len(want) {
		t.Fatalf("got %d inquiries, want %d", len(inquiries), len(want))
	}
	for i, name := range want {
		if inquiries[i].Name != name {
			t.Errorf("inquiry %d = %q, want %q", i, inquiries[i].Name, name)
		}
	}
}
