package admin

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/hvr-studio/internal/coupon"
	"github.com/evcraddock/hvr-studio/internal/customer"
	"github.com/evcraddock/hvr-studio/internal/db/dbtest"
	"github.com/evcraddock/hvr-studio/internal/project"
	"github.com/evcraddock/hvr-studio/internal/store"
)

var errStoreDown = errors.New("store unavailable")

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Add(context.Context, string, map[string]any) (string, error) {
	return "", errStoreDown
}
func (failingStore) Create(context.Context, string, string, map[string]any) error {
	return errStoreDown
}
func (failingStore) Get(context.Context, string, string) (*store.Document, error) {
	return nil, errStoreDown
}
func (failingStore) Query(context.Context, store.Query) ([]*store.Document, error) {
	return nil, errStoreDown
}
func (failingStore) Update(context.Context, string, string, []store.Update) error {
	return errStoreDown
}
func (failingStore) Merge(context.Context, string, string, map[string]any) error {
	return errStoreDown
}
func (failingStore) Delete(context.Context, string, string) error { return errStoreDown }
func (failingStore) Close() error                                 { return nil }

func newFailing(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewService(failingStore{}, logger, nil), &buf
}

// An empty list from a soft read is ambiguous: it looks the same whether
// the collection is empty or the store is down. Only the log tells them apart.
func TestSoftReadsSwallowErrors(t *testing.T) {
	svc, logs := newFailing(t)
	ctx := context.Background()

	lengths := map[string]int{
		"customers":         len(svc.ListCustomers(ctx)),
		"search":            len(svc.SearchCustomers(ctx, "jane")),
		"projects":          len(svc.ListProjects(ctx)),
		"customer projects": len(svc.ListCustomerProjects(ctx, "c1")),
		"inquiries":         len(svc.ListInquiries(ctx)),
		"unread":            len(svc.ListUnreadInquiries(ctx)),
		"bookings":          len(svc.ListBookings(ctx)),
		"upcoming":          len(svc.ListUpcomingBookings(ctx)),
		"quotes":            len(svc.ListQuotes(ctx)),
		"pending":           len(svc.ListPendingQuotes(ctx)),
		"coupons":           len(svc.ListCoupons(ctx)),
		"analytics":         len(svc.AnalyticsRange(ctx, "2026-01-01", "2026-01-31")),
	}
	for name, n := range lengths {
		if n != 0 {
			t.Errorf("%s: got %d items, want 0", name, n)
		}
	}

	if got := strings.Count(logs.String(), "admin read failed"); got != len(lengths) {
		t.Errorf("logged %d failures, want %d", got, len(lengths))
	}

	healthy := NewService(dbtest.Open(t, nil), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil)
	if got := healthy.ListCustomers(ctx); got == nil || len(got) != 0 {
		t.Errorf("empty store: got %v, want empty non-nil slice", got)
	}
}

func TestSoftListsAreNonNil(t *testing.T) {
	svc, _ := newFailing(t)

	if svc.ListCustomers(context.Background()) == nil {
		t.Error("failed list should be empty, not nil")
	}
}

func TestLookupsSwallowErrors(t *testing.T) {
	svc, logs := newFailing(t)
	ctx := context.Background()

	if _, ok := svc.GetCustomer(ctx, "c1"); ok {
		t.Error("GetCustomer ok on failure")
	}
	if _, ok := svc.GetProject(ctx, "p1"); ok {
		t.Error("GetProject ok on failure")
	}
	if _, ok := svc.GetCoupon(ctx, "SAVE"); ok {
		t.Error("GetCoupon ok on failure")
	}
	if !strings.Contains(logs.String(), "admin lookup failed") {
		t.Errorf("failure not logged: %s", logs.String())
	}
}

func TestWritesPropagateErrors(t *testing.T) {
	svc, _ := newFailing(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"create customer", func() error {
			_, err := svc.CreateCustomer(ctx, &customer.Customer{PersonalInfo: customer.PersonalInfo{Name: "Jane"}})
			return err
		}},
		{"update customer", func() error { return svc.UpdateCustomer(ctx, "c1", customer.Changes{}) }},
		{"delete customer", func() error { return svc.DeleteCustomer(ctx, "c1") }},
		{"create project", func() error {
			_, err := svc.CreateProject(ctx, &project.Project{CustomerID: "c1"})
			return err
		}},
		{"project status", func() error { return svc.UpdateProjectStatus(ctx, "p1", project.StatusBooked, "") }},
		{"project note", func() error { return svc.AddProjectNote(ctx, "p1", "hi", "") }},
		{"timeline", func() error { return svc.AppendTimelineEntry(ctx, "p1", "x", "") }},
		{"mark read", func() error { return svc.MarkInquiryRead(ctx, "i1") }},
		{"delete booking", func() error { return svc.DeleteBooking(ctx, "b1") }},
		{"delete quote", func() error { return svc.DeleteQuote(ctx, "q1") }},
		{"redeem coupon", func() error { return svc.RedeemCoupon(ctx, "SAVE") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, errStoreDown) {
				t.Errorf("err = %v, want store error", err)
			}
		})
	}
}

func TestAnalyticsWritesReturnFalse(t *testing.T) {
	svc, logs := newFailing(t)
	ctx := context.Background()

	if svc.RecordPageView(ctx, "home") {
		t.Error("RecordPageView = true on failure")
	}
	if svc.RecordConversion(ctx, "contact") {
		t.Error("RecordConversion = true on failure")
	}
	if strings.Count(logs.String(), "level=ERROR") != 2 {
		t.Errorf("expected two error logs, got: %s", logs.String())
	}
}

func TestValidateCouponStoreFailure(t *testing.T) {
	svc, _ := newFailing(t)

	v := svc.ValidateCoupon(context.Background(), "SAVE")
	if v.Valid || v.Reason != ReasonValidationError {
		t.Errorf("got %+v, want invalid with %q", v, ReasonValidationError)
	}
}

func TestEndToEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService(dbtest.Open(t, nil), nil, func() time.Time { return now })
	ctx := context.Background()

	custID, err := svc.CreateCustomer(ctx, &customer.Customer{PersonalInfo: customer.PersonalInfo{Name: "John Smith", Email: "jane@example.com"}})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if got := svc.SearchCustomers(ctx, "JANE"); len(got) != 1 || got[0].ID != custID {
		t.Errorf("search = %v", got)
	}

	projID, err := svc.CreateProject(ctx, &project.Project{CustomerID: custID, ProjectInfo: project.Info{Title: "Family session"}})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := svc.UpdateProjectStatus(ctx, projID, project.StatusBooked, ""); err != nil {
		t.Fatalf("update status: %v", err)
	}
	p, ok := svc.GetProject(ctx, projID)
	if !ok || p.ProjectInfo.Status != project.StatusBooked || len(p.Timeline) != 2 {
		t.Fatalf("project = %+v, ok=%v", p, ok)
	}
	if got := svc.ListCustomerProjects(ctx, custID); len(got) != 1 {
		t.Errorf("customer projects = %d, want 1", len(got))
	}

	if _, ok := svc.GetCustomer(ctx, "missing"); ok {
		t.Error("GetCustomer ok for missing id")
	}

	if _, err := svc.CreateCoupon(ctx, &coupon.Coupon{Code: "spring", ValidUntil: "2026-03-31"}); err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	if v := svc.ValidateCoupon(ctx, "Spring"); !v.Valid {
		t.Fatalf("validate = %+v", v)
	}
	if err := svc.RedeemCoupon(ctx, "SPRING"); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if c, ok := svc.GetCoupon(ctx, "spring"); !ok || c.UsedCount != 1 {
		t.Errorf("coupon = %+v, ok=%v", c, ok)
	}
	if v := svc.ValidateCoupon(ctx, "nope"); v.Valid || v.Reason != coupon.ReasonInvalidCode {
		t.Errorf("validate missing = %+v", v)
	}

	if !svc.RecordPageView(ctx, "home") || !svc.RecordConversion(ctx, "contact") {
		t.Fatal("analytics write failed")
	}
	days := svc.AnalyticsRange(ctx, "2026-03-10", "2026-03-10")
	if len(days) != 1 || days[0].PageViews != 1 || days[0].Conversions != 1 {
		t.Errorf("days = %+v", days)
	}
}
