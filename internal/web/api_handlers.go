package web

import (
	"net/http"
	"time"

	"github.com/evcraddock/hvr-studio/internal/booking"
	"github.com/evcraddock/hvr-studio/internal/inquiry"
	"github.com/evcraddock/hvr-studio/internal/project"
	"github.com/evcraddock/hvr-studio/internal/quote"
	"github.com/evcraddock/hvr-studio/internal/store"
)

// defaultAnalyticsDays is the range returned when no dates are given.
const defaultAnalyticsDays = 30

type createdResponse struct {
	ID string `json:"id"`
}

// found writes v, or a 404 when ok is false.
func found[T any](w http.ResponseWriter, v *T, ok bool) {
	if !ok {
		apiError(w, "not found", http.StatusNotFound)
		return
	}
	apiJSON(w, v, http.StatusOK)
}

// Customers

func (s *Server) apiListCustomers(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		apiJSON(w, s.svc.SearchCustomers(r.Context(), q), http.StatusOK)
		return
	}
	apiJSON(w, s.svc.ListCustomers(r.Context()), http.StatusOK)
}

func (s *Server) apiCreateCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[customerRequest](s, w, r)
	if !ok {
		return
	}
	id, err := s.svc.CreateCustomer(r.Context(), req.toCustomer())
	if err != nil {
		s.storeError(w, r, "creating customer", err)
		return
	}
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

func (s *Server) apiGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, ok := s.svc.GetCustomer(r.Context(), r.PathValue("id"))
	found(w, c, ok)
}

func (s *Server) apiUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[customerPatch](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateCustomer(r.Context(), r.PathValue("id"), req.toChanges()); err != nil {
		s.storeError(w, r, "updating customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "deleting customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiListCustomerProjects(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.svc.ListCustomerProjects(r.Context(), r.PathValue("id")), http.StatusOK)
}

// Projects

func (s *Server) apiListProjects(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.svc.ListProjects(r.Context()), http.StatusOK)
}

func (s *Server) apiCreateProject(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[projectRequest](s, w, r)
	if !ok {
		return
	}
	if req.Status != "" && !project.Status(req.Status).IsValid() {
		apiError(w, "invalid project status", http.StatusBadRequest)
		return
	}
	id, err := s.svc.CreateProject(r.Context(), req.toProject())
	if err != nil {
		s.storeError(w, r, "creating project", err)
		return
	}
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

func (s *Server) apiGetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.svc.GetProject(r.Context(), r.PathValue("id"))
	found(w, p, ok)
}

func (s *Server) apiUpdateProject(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[projectPatch](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateProject(r.Context(), r.PathValue("id"), req.toChanges()); err != nil {
		s.storeError(w, r, "updating project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "deleting project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[statusRequest](s, w, r)
	if !ok {
		return
	}
	status := project.Status(req.Status)
	if !status.IsValid() {
		apiError(w, "invalid project status", http.StatusBadRequest)
		return
	}
	if err := s.svc.UpdateProjectStatus(r.Context(), r.PathValue("id"), status, req.User); err != nil {
		s.storeError(w, r, "updating project status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiAddProjectNote(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[noteRequest](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.AddProjectNote(r.Context(), r.PathValue("id"), req.Note, req.User); err != nil {
		s.storeError(w, r, "adding project note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiAppendTimeline(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[timelineRequest](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.AppendTimelineEntry(r.Context(), r.PathValue("id"), req.Event, req.User); err != nil {
		s.storeError(w, r, "appending timeline entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Inquiries

func (s *Server) apiListInquiries(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("unread") == "true" {
		apiJSON(w, s.svc.ListUnreadInquiries(r.Context()), http.StatusOK)
		return
	}
	apiJSON(w, s.svc.ListInquiries(r.Context()), http.StatusOK)
}

func (s *Server) apiGetInquiry(w http.ResponseWriter, r *http.Request) {
	i, ok := s.svc.GetInquiry(r.Context(), r.PathValue("id"))
	found(w, i, ok)
}

func (s *Server) apiMarkInquiryRead(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.MarkInquiryRead(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "marking inquiry read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiUpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[statusRequest](s, w, r)
	if !ok {
		return
	}
	status := inquiry.Status(req.Status)
	if !status.IsValid() {
		apiError(w, "invalid inquiry status", http.StatusBadRequest)
		return
	}
	if err := s.svc.UpdateInquiryStatus(r.Context(), r.PathValue("id"), status); err != nil {
		s.storeError(w, r, "updating inquiry status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteInquiry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteInquiry(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "deleting inquiry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bookings

func (s *Server) apiListBookings(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("upcoming") == "true" {
		apiJSON(w, s.svc.ListUpcomingBookings(r.Context()), http.StatusOK)
		return
	}
	apiJSON(w, s.svc.ListBookings(r.Context()), http.StatusOK)
}

func (s *Server) apiCreateBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[bookingRequest](s, w, r)
	if !ok {
		return
	}
	if req.Status != "" && !booking.Status(req.Status).IsValid() {
		apiError(w, "invalid booking status", http.StatusBadRequest)
		return
	}
	id, err := s.svc.CreateBooking(r.Context(), req.toBooking())
	if err != nil {
		s.storeError(w, r, "creating booking", err)
		return
	}
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

func (s *Server) apiGetBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := s.svc.GetBooking(r.Context(), r.PathValue("id"))
	found(w, b, ok)
}

func (s *Server) apiUpdateBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[bookingPatch](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateBooking(r.Context(), r.PathValue("id"), req.toChanges()); err != nil {
		s.storeError(w, r, "updating booking", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[statusRequest](s, w, r)
	if !ok {
		return
	}
	status := booking.Status(req.Status)
	if !status.IsValid() {
		apiError(w, "invalid booking status", http.StatusBadRequest)
		return
	}
	if err := s.svc.UpdateBookingStatus(r.Context(), r.PathValue("id"), status); err != nil {
		s.storeError(w, r, "updating booking status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteBooking(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "deleting booking", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quotes

func (s *Server) apiListQuotes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("pending") == "true" {
		apiJSON(w, s.svc.ListPendingQuotes(r.Context()), http.StatusOK)
		return
	}
	apiJSON(w, s.svc.ListQuotes(r.Context()), http.StatusOK)
}

func (s *Server) apiGetQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := s.svc.GetQuote(r.Context(), r.PathValue("id"))
	found(w, q, ok)
}

func (s *Server) apiUpdateQuote(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[quotePatch](s, w, r)
	if !ok {
		return
	}
	if err := s.svc.UpdateQuote(r.Context(), r.PathValue("id"), req.toChanges()); err != nil {
		s.storeError(w, r, "updating quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiUpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[statusRequest](s, w, r)
	if !ok {
		return
	}
	status := quote.Status(req.Status)
	if !status.IsValid() {
		apiError(w, "invalid quote status", http.StatusBadRequest)
		return
	}
	if err := s.svc.UpdateQuoteStatus(r.Context(), r.PathValue("id"), status); err != nil {
		s.storeError(w, r, "updating quote status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteQuote(r.Context(), r.PathValue("id")); err != nil {
		s.storeError(w, r, "deleting quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Coupons

func (s *Server) apiListCoupons(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.svc.ListCoupons(r.Context()), http.StatusOK)
}

func (s *Server) apiCreateCoupon(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[couponRequest](s, w, r)
	if !ok {
		return
	}
	code, err := s.svc.CreateCoupon(r.Context(), req.toCoupon())
	if err != nil {
		s.storeError(w, r, "creating coupon", err)
		return
	}
	apiJSON(w, createdResponse{ID: code}, http.StatusCreated)
}

func (s *Server) apiGetCoupon(w http.ResponseWriter, r *http.Request) {
	c, ok := s.svc.GetCoupon(r.Context(), r.PathValue("code"))
	found(w, c, ok)
}

func (s *Server) apiDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCoupon(r.Context(), r.PathValue("code")); err != nil {
		s.storeError(w, r, "deleting coupon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiRedeemCoupon(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RedeemCoupon(r.Context(), r.PathValue("code")); err != nil {
		s.storeError(w, r, "redeeming coupon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Analytics

// apiAnalyticsRange returns daily counters between start and end
// (inclusive). Both default to a window ending today.
func (s *Server) apiAnalyticsRange(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if end == "" {
		end = store.DateKey(time.Now())
	}
	endDate, err := time.Parse(store.DateLayout, end)
	if err != nil {
		apiError(w, "end must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}
	if start == "" {
		start = store.DateKey(endDate.AddDate(0, 0, -(defaultAnalyticsDays - 1)))
	}
	if _, err := time.Parse(store.DateLayout, start); err != nil {
		apiError(w, "start must be a YYYY-MM-DD date", http.StatusBadRequest)
		return
	}

	apiJSON(w, s.svc.AnalyticsRange(r.Context(), start, end), http.StatusOK)
}
