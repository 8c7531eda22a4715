package web

import (
	"github.com/evcraddock/hvr-studio/internal/booking"
	"github.com/evcraddock/hvr-studio/internal/coupon"
	"github.com/evcraddock/hvr-studio/internal/customer"
	"github.com/evcraddock/hvr-studio/internal/inquiry"
	"github.com/evcraddock/hvr-studio/internal/project"
	"github.com/evcraddock/hvr-studio/internal/quote"
)

type customerRequest struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Phone  string   `json:"phone"`
	Source string   `json:"source"`
	Notes  string   `json:"notes"`
	Tags   []string `json:"tags"`
}

func (r *customerRequest) toCustomer() *customer.Customer {
	return &customer.Customer{
		PersonalInfo: customer.PersonalInfo{Name: r.Name, Email: r.Email, Phone: r.Phone},
		Engagement:   customer.Engagement{Source: r.Source},
		Notes:        r.Notes,
		Tags:         r.Tags,
	}
}

type customerPatch struct {
	Name   *string   `json:"name" validate:"omitempty,min=1"`
	Email  *string   `json:"email" validate:"omitempty,email"`
	Phone  *string   `json:"phone"`
	Source *string   `json:"source"`
	Notes  *string   `json:"notes"`
	Tags   *[]string `json:"tags"`
}

func (p *customerPatch) toChanges() customer.Changes {
	return customer.Changes{Name: p.Name, Email: p.Email, Phone: p.Phone, Source: p.Source, Notes: p.Notes, Tags: p.Tags}
}

type projectRequest struct {
	CustomerID string  `json:"customerId" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	ShootDate  string  `json:"shootDate" validate:"omitempty,datetime=2006-01-02"`
	Location   string  `json:"location"`
	Price      float64 `json:"price" validate:"gte=0"`
}

func (r *projectRequest) toProject() *project.Project {
	return &project.Project{
		CustomerID: r.CustomerID,
		ProjectInfo: project.Info{
			Title:     r.Title,
			Type:      r.Type,
			Status:    project.Status(r.Status),
			ShootDate: r.ShootDate,
			Location:  r.Location,
			Price:     r.Price,
		},
	}
}

type projectPatch struct {
	Title     *string  `json:"title" validate:"omitempty,min=1"`
	Type      *string  `json:"type"`
	ShootDate *string  `json:"shootDate" validate:"omitempty,datetime=2006-01-02"`
	Location  *string  `json:"location"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (p *projectPatch) toChanges() project.Changes {
	return project.Changes{Title: p.Title, Type: p.Type, ShootDate: p.ShootDate, Location: p.Location, Price: p.Price}
}

// statusRequest is shared by every status endpoint; each handler checks
// Status against its own entity's values.
type statusRequest struct {
	Status string `json:"status" validate:"required"`
	User   string `json:"user"`
}

type noteRequest struct {
	Note string `json:"note" validate:"required"`
	User string `json:"user"`
}

type timelineRequest struct {
	Event string `json:"event" validate:"required"`
	User  string `json:"user"`
}

type bookingRequest struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Service    string `json:"service"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
}

func (r *bookingRequest) toBooking() *booking.Booking {
	return &booking.Booking{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Service:    r.Service,
		Date:       r.Date,
		Time:       r.Time,
		Notes:      r.Notes,
		Status:     booking.Status(r.Status),
	}
}

type bookingPatch struct {
	Date    *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time    *string `json:"time"`
	Service *string `json:"service"`
	Notes   *string `json:"notes"`
}

func (p *bookingPatch) toChanges() booking.Changes {
	return booking.Changes{Date: p.Date, Time: p.Time, Service: p.Service, Notes: p.Notes}
}

type quotePatch struct {
	Amount  *float64 `json:"amount" validate:"omitempty,gte=0"`
	Details *string  `json:"details"`
}

func (p *quotePatch) toChanges() quote.Changes {
	return quote.Changes{Amount: p.Amount, Details: p.Details}
}

type couponRequest struct {
	Code          string  `json:"code" validate:"required,max=32"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discountType" validate:"omitempty,oneof=percent fixed"`
	DiscountValue float64 `json:"discountValue" validate:"gte=0"`
	ValidFrom     string  `json:"validFrom" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil    string  `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	UsageLimit    *int64  `json:"usageLimit" validate:"omitempty,gte=0"`
}

func (r *couponRequest) toCoupon() *coupon.Coupon {
	return &coupon.Coupon{
		Code:          r.Code,
		Description:   r.Description,
		DiscountType:  coupon.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		UsageLimit:    r.UsageLimit,
	}
}

// Public site forms.

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" validate:"required"`
}

func (r *contactRequest) toInquiry() *inquiry.Inquiry {
	return &inquiry.Inquiry{Name: r.Name, Email: r.Email, Phone: r.Phone, Service: r.Service, Message: r.Message}
}

type bookingFormRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

func (r *bookingFormRequest) toBooking() *booking.Booking {
	return &booking.Booking{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
		Notes:   r.Notes,
		Status:  booking.StatusPending,
	}
}

type quoteFormRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Service   string `json:"service" validate:"required"`
	EventDate string `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	Budget    string `json:"budget"`
	Details   string `json:"details"`
}

func (r *quoteFormRequest) toQuote() *quote.Quote {
	return &quote.Quote{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Service:   r.Service,
		EventDate: r.EventDate,
		Budget:    r.Budget,
		Details:   r.Details,
	}
}

type pageViewRequest struct {
	Page string `json:"page" validate:"required,max=200"`
}

type conversionRequest struct {
	Type string `json:"type" validate:"required,max=100"`
}
