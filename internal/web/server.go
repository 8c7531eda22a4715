// Package web provides the JSON HTTP API for the studio admin and the
// public site forms.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/hvr-studio/internal/admin"
	"github.com/evcraddock/hvr-studio/internal/auth"
	"github.com/evcraddock/hvr-studio/internal/logging"
)

// Server is the API HTTP server.
type Server struct {
	svc      *admin.Service
	apiKeys  *auth.APIKeyStore
	logger   *slog.Logger
	validate *validator.Validate
	mux      *http.ServeMux
	handler  http.Handler
}

// NewServer wires the routes over svc. Admin routes require an API key
// from apiKeys.
func NewServer(svc *admin.Service, apiKeys *auth.APIKeyStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		svc:      svc,
		apiKeys:  apiKeys,
		logger:   logger,
		validate: newValidator(),
		mux:      http.NewServeMux(),
	}
	s.routes()
	s.handler = logging.RequestLogger(logger, auth.RequireAPIKey(apiKeys, logger, s.mux))
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/customers", s.apiListCustomers)
	s.mux.HandleFunc("POST /api/customers", s.apiCreateCustomer)
	s.mux.HandleFunc("GET /api/customers/{id}", s.apiGetCustomer)
	s.mux.HandleFunc("PATCH /api/customers/{id}", s.apiUpdateCustomer)
	s.mux.HandleFunc("DELETE /api/customers/{id}", s.apiDeleteCustomer)
	s.mux.HandleFunc("GET /api/customers/{id}/projects", s.apiListCustomerProjects)

	s.mux.HandleFunc("GET /api/projects", s.apiListProjects)
	s.mux.HandleFunc("POST /api/projects", s.apiCreateProject)
	s.mux.HandleFunc("GET /api/projects/{id}", s.apiGetProject)
	s.mux.HandleFunc("PATCH /api/projects/{id}", s.apiUpdateProject)
	s.mux.HandleFunc("DELETE /api/projects/{id}", s.apiDeleteProject)
	s.mux.HandleFunc("POST /api/projects/{id}/status", s.apiUpdateProjectStatus)
	s.mux.HandleFunc("POST /api/projects/{id}/notes", s.apiAddProjectNote)
	s.mux.HandleFunc("POST /api/projects/{id}/timeline", s.apiAppendTimeline)

	s.mux.HandleFunc("GET /api/inquiries", s.apiListInquiries)
	s.mux.HandleFunc("GET /api/inquiries/{id}", s.apiGetInquiry)
	s.mux.HandleFunc("POST /api/inquiries/{id}/read", s.apiMarkInquiryRead)
	s.mux.HandleFunc("POST /api/inquiries/{id}/status", s.apiUpdateInquiryStatus)
	s.mux.HandleFunc("DELETE /api/inquiries/{id}", s.apiDeleteInquiry)

	s.mux.HandleFunc("GET /api/bookings", s.apiListBookings)
	s.mux.HandleFunc("POST /api/bookings", s.apiCreateBooking)
	s.mux.HandleFunc("GET /api/bookings/{id}", s.apiGetBooking)
	s.mux.HandleFunc("PATCH /api/bookings/{id}", s.apiUpdateBooking)
	s.mux.HandleFunc("POST /api/bookings/{id}/status", s.apiUpdateBookingStatus)
	s.mux.HandleFunc("DELETE /api/bookings/{id}", s.apiDeleteBooking)

	s.mux.HandleFunc("GET /api/quotes", s.apiListQuotes)
	s.mux.HandleFunc("GET /api/quotes/{id}", s.apiGetQuote)
	s.mux.HandleFunc("PATCH /api/quotes/{id}", s.apiUpdateQuote)
	s.mux.HandleFunc("POST /api/quotes/{id}/status", s.apiUpdateQuoteStatus)
	s.mux.HandleFunc("DELETE /api/quotes/{id}", s.apiDeleteQuote)

	s.mux.HandleFunc("GET /api/coupons", s.apiListCoupons)
	s.mux.HandleFunc("POST /api/coupons", s.apiCreateCoupon)
	s.mux.HandleFunc("GET /api/coupons/{code}", s.apiGetCoupon)
	s.mux.HandleFunc("DELETE /api/coupons/{code}", s.apiDeleteCoupon)
	s.mux.HandleFunc("POST /api/coupons/{code}/redeem", s.apiRedeemCoupon)

	s.mux.HandleFunc("GET /api/analytics", s.apiAnalyticsRange)

	s.mux.HandleFunc("POST /api/public/contact", s.publicContact)
	s.mux.HandleFunc("POST /api/public/bookings", s.publicBookingRequest)
	s.mux.HandleFunc("POST /api/public/quotes", s.publicQuoteRequest)
	s.mux.HandleFunc("GET /api/public/coupons/{code}", s.publicValidateCoupon)
	s.mux.HandleFunc("POST /api/public/track/pageview", s.publicTrackPageView)
	s.mux.HandleFunc("POST /api/public/track/conversion", s.publicTrackConversion)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
