// Package admin exposes every studio data operation behind one Service.
//
// Reads, searches and analytics calls absorb store failures: they log the
// error and return an empty result, so an empty list can mean either "none"
// or "failed". Creates, updates, deletes and coupon redemption return the
// error to the caller. Lookups by ID report absence with a false ok value.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/evcraddock/hvr-studio/internal/analytics"
	"github.com/evcraddock/hvr-studio/internal/booking"
	"github.com/evcraddock/hvr-studio/internal/coupon"
	"github.com/evcraddock/hvr-studio/internal/customer"
	"github.com/evcraddock/hvr-studio/internal/inquiry"
	"github.com/evcraddock/hvr-studio/internal/project"
	"github.com/evcraddock/hvr-studio/internal/quote"
	"github.com/evcraddock/hvr-studio/internal/store"
)

// ReasonValidationError is returned as the reason when a coupon could not
// be checked because the store failed.
const ReasonValidationError = "Error validating coupon"

// Service is the studio's data access surface.
type Service struct {
	customers *customer.Repository
	projects  *project.Repository
	inquiries *inquiry.Repository
	bookings  *booking.Repository
	quotes    *quote.Repository
	coupons   *coupon.Repository
	analytics *analytics.Repository
	logger    *slog.Logger
}

// NewService builds the repositories over s. now is the clock used for
// "today" in bookings, coupons and analytics; nil means time.Now. A nil
// logger uses slog.Default.
func NewService(s store.Store, logger *slog.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		customers: customer.NewRepository(s),
		projects:  project.NewRepository(s),
		inquiries: inquiry.NewRepository(s),
		bookings:  booking.NewRepository(s, now),
		quotes:    quote.NewRepository(s),
		coupons:   coupon.NewRepository(s, now),
		analytics: analytics.NewRepository(s, now),
		logger:    logger,
	}
}

// soft runs a read and swaps a failure for an empty slice.
func soft[T any](ctx context.Context, s *Service, op string, fn func(context.Context) ([]T, error)) []T {
	items, err := fn(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "admin read failed", "op", op, "error", err)
		return []T{}
	}
	return items
}

// lookup runs a single-record read. Absence and failure both yield ok=false;
// only failures are logged.
func lookup[T any](ctx context.Context, s *Service, op, id string, fn func(context.Context, string) (*T, error)) (*T, bool) {
	item, err := fn(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "admin lookup failed", "op", op, "id", id, "error", err)
		return nil, false
	}
	return item, true
}

// Customers

func (s *Service) ListCustomers(ctx context.Context) []*customer.Customer {
	return soft(ctx, s, "list customers", s.customers.List)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*customer.Customer, bool) {
	return lookup(ctx, s, "get customer", id, s.customers.Get)
}

// SearchCustomers matches text against name, email and phone.
func (s *Service) SearchCustomers(ctx context.Context, text string) []*customer.Customer {
	return soft(ctx, s, "search customers", func(ctx context.Context) ([]*customer.Customer, error) {
		return s.customers.Search(ctx, text)
	})
}

func (s *Service) CreateCustomer(ctx context.Context, c *customer.Customer) (string, error) {
	return s.customers.Create(ctx, c)
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, ch customer.Changes) error {
	return s.customers.Update(ctx, id, ch)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// Projects

func (s *Service) ListProjects(ctx context.Context) []*project.Project {
	return soft(ctx, s, "list projects", s.projects.List)
}

func (s *Service) GetProject(ctx context.Context, id string) (*project.Project, bool) {
	return lookup(ctx, s, "get project", id, s.projects.Get)
}

func (s *Service) ListCustomerProjects(ctx context.Context, customerID string) []*project.Project {
	return soft(ctx, s, "list customer projects", func(ctx context.Context) ([]*project.Project, error) {
		return s.projects.ListByCustomer(ctx, customerID)
	})
}

func (s *Service) CreateProject(ctx context.Context, p *project.Project) (string, error) {
	return s.projects.Create(ctx, p)
}

func (s *Service) UpdateProject(ctx context.Context, id string, ch project.Changes) error {
	return s.projects.Update(ctx, id, ch)
}

func (s *Service) UpdateProjectStatus(ctx context.Context, id string, status project.Status, user string) error {
	return s.projects.UpdateStatus(ctx, id, status, user)
}

func (s *Service) AddProjectNote(ctx context.Context, id, note, user string) error {
	return s.projects.AddNote(ctx, id, note, user)
}

// AppendTimelineEntry is a non-atomic read-modify-write of the timeline.
func (s *Service) AppendTimelineEntry(ctx context.Context, id, event, user string) error {
	return s.projects.AppendTimelineEntry(ctx, id, event, user)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// Inquiries

func (s *Service) ListInquiries(ctx context.Context) []*inquiry.Inquiry {
	return soft(ctx, s, "list inquiries", s.inquiries.List)
}

func (s *Service) ListUnreadInquiries(ctx context.Context) []*inquiry.Inquiry {
	return soft(ctx, s, "list unread inquiries", s.inquiries.ListUnread)
}

func (s *Service) GetInquiry(ctx context.Context, id string) (*inquiry.Inquiry, bool) {
	return lookup(ctx, s, "get inquiry", id, s.inquiries.Get)
}

func (s *Service) CreateInquiry(ctx context.Context, i *inquiry.Inquiry) (string, error) {
	return s.inquiries.Create(ctx, i)
}

func (s *Service) MarkInquiryRead(ctx context.Context, id string) error {
	return s.inquiries.MarkRead(ctx, id)
}

func (s *Service) UpdateInquiryStatus(ctx context.Context, id string, status inquiry.Status) error {
	return s.inquiries.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteInquiry(ctx context.Context, id string) error {
	return s.inquiries.Delete(ctx, id)
}

// Bookings

func (s *Service) ListBookings(ctx context.Context) []*booking.Booking {
	return soft(ctx, s, "list bookings", s.bookings.List)
}

func (s *Service) ListUpcomingBookings(ctx context.Context) []*booking.Booking {
	return soft(ctx, s, "list upcoming bookings", s.bookings.ListUpcoming)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*booking.Booking, bool) {
	return lookup(ctx, s, "get booking", id, s.bookings.Get)
}

func (s *Service) CreateBooking(ctx context.Context, b *booking.Booking) (string, error) {
	return s.bookings.Create(ctx, b)
}

func (s *Service) UpdateBooking(ctx context.Context, id string, ch booking.Changes) error {
	return s.bookings.Update(ctx, id, ch)
}

func (s *Service) UpdateBookingStatus(ctx context.Context, id string, status booking.Status) error {
	return s.bookings.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

// Quotes

func (s *Service) ListQuotes(ctx context.Context) []*quote.Quote {
	return soft(ctx, s, "list quotes", s.quotes.List)
}

func (s *Service) ListPendingQuotes(ctx context.Context) []*quote.Quote {
	return soft(ctx, s, "list pending quotes", s.quotes.ListPending)
}

func (s *Service) GetQuote(ctx context.Context, id string) (*quote.Quote, bool) {
	return lookup(ctx, s, "get quote", id, s.quotes.Get)
}

func (s *Service) CreateQuote(ctx context.Context, q *quote.Quote) (string, error) {
	return s.quotes.Create(ctx, q)
}

func (s *Service) UpdateQuote(ctx context.Context, id string, ch quote.Changes) error {
	return s.quotes.Update(ctx, id, ch)
}

func (s *Service) UpdateQuoteStatus(ctx context.Context, id string, status quote.Status) error {
	return s.quotes.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteQuote(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// Coupons

func (s *Service) ListCoupons(ctx context.Context) []*coupon.Coupon {
	return soft(ctx, s, "list coupons", s.coupons.List)
}

func (s *Service) GetCoupon(ctx context.Context, code string) (*coupon.Coupon, bool) {
	return lookup(ctx, s, "get coupon", code, s.coupons.Get)
}

func (s *Service) CreateCoupon(ctx context.Context, c *coupon.Coupon) (string, error) {
	return s.coupons.Create(ctx, c)
}

// ValidateCoupon never fails: a store error is reported as an invalid
// coupon with ReasonValidationError.
func (s *Service) ValidateCoupon(ctx context.Context, code string) *coupon.Validation {
	v, err := s.coupons.Validate(ctx, code)
	if err != nil {
		s.logger.ErrorContext(ctx, "coupon validation failed", "code", code, "error", err)
		return &coupon.Validation{Reason: ReasonValidationError}
	}
	return v
}

// RedeemCoupon adds one use without re-validating. Call ValidateCoupon first;
// the pair is not atomic.
func (s *Service) RedeemCoupon(ctx context.Context, code string) error {
	return s.coupons.Redeem(ctx, code)
}

func (s *Service) DeleteCoupon(ctx context.Context, code string) error {
	return s.coupons.Delete(ctx, code)
}

// Analytics

// RecordPageView reports whether the view was counted.
func (s *Service) RecordPageView(ctx context.Context, page string) bool {
	if err := s.analytics.RecordPageView(ctx, page); err != nil {
		s.logger.ErrorContext(ctx, "recording page view failed", "page", page, "error", err)
		return false
	}
	return true
}

// RecordConversion reports whether the conversion was counted.
func (s *Service) RecordConversion(ctx context.Context, kind string) bool {
	if err := s.analytics.RecordConversion(ctx, kind); err != nil {
		s.logger.ErrorContext(ctx, "recording conversion failed", "type", kind, "error", err)
		return false
	}
	return true
}

func (s *Service) AnalyticsRange(ctx context.Context, start, end string) []*analytics.Day {
	return soft(ctx, s, "analytics range", func(ctx context.Context) ([]*analytics.Day, error) {
		return s.analytics.Range(ctx, start, end)
	})
}
