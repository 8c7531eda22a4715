package web

import "net/http"

type recordedResponse struct {
	Recorded bool `json:"recorded"`
}

// publicContact stores a contact-form inquiry and counts a conversion.
func (s *Server) publicContact(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[contactRequest](s, w, r)
	if !ok {
		return
	}
	id, err := s.svc.CreateInquiry(r.Context(), req.toInquiry())
	if err != nil {
		s.storeError(w, r, "submitting contact form", err)
		return
	}
	s.svc.RecordConversion(r.Context(), "contact")
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

// publicBookingRequest stores a pending booking.
func (s *Server) publicBookingRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[bookingFormRequest](s, w, r)
	if !ok {
		return
	}
	id, err := s.svc.CreateBooking(r.Context(), req.toBooking())
	if err != nil {
		s.storeError(w, r, "submitting booking request", err)
		return
	}
	s.svc.RecordConversion(r.Context(), "booking")
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

// publicQuoteRequest stores a pending quote.
func (s *Server) publicQuoteRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[quoteFormRequest](s, w, r)
	if !ok {
		return
	}
	id, err := s.svc.CreateQuote(r.Context(), req.toQuote())
	if err != nil {
		s.storeError(w, r, "submitting quote request", err)
		return
	}
	s.svc.RecordConversion(r.Context(), "quote")
	apiJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

// publicValidateCoupon checks a code at checkout. It does not redeem.
func (s *Server) publicValidateCoupon(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.svc.ValidateCoupon(r.Context(), r.PathValue("code")), http.StatusOK)
}

// Tracking beacons always answer 202; recorded says whether the count landed.

func (s *Server) publicTrackPageView(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[pageViewRequest](s, w, r)
	if !ok {
		return
	}
	apiJSON(w, recordedResponse{Recorded: s.svc.RecordPageView(r.Context(), req.Page)}, http.StatusAccepted)
}

func (s *Server) publicTrackConversion(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[conversionRequest](s, w, r)
	if !ok {
		return
	}
	apiJSON(w, recordedResponse{Recorded: s.svc.RecordConversion(r.Context(), req.Type)}, http.StatusAccepted)
}
