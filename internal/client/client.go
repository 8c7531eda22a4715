// Package client provides an HTTP client for the studio admin API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/hvr-studio/internal/analytics"
	"github.com/evcraddock/hvr-studio/internal/booking"
	"github.com/evcraddock/hvr-studio/internal/coupon"
	"github.com/evcraddock/hvr-studio/internal/customer"
	"github.com/evcraddock/hvr-studio/internal/inquiry"
	"github.com/evcraddock/hvr-studio/internal/project"
	"github.com/evcraddock/hvr-studio/internal/quote"
)

// Client is an HTTP client for the studio API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type created struct {
	ID string `json:"id"`
}

// Health checks that the server is reachable.
func (c *Client) Health() error {
	return c.get("/health", nil)
}

// Customers

// ListCustomers returns all customers, or those matching query when set.
func (c *Client) ListCustomers(query string) ([]*customer.Customer, error) {
	var out []*customer.Customer
	if err := c.get(withQuery("/api/customers", "q", query), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomer returns a customer by ID.
func (c *Client) GetCustomer(id string) (*customer.Customer, error) {
	var out customer.Customer
	if err := c.get("/api/customers/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewCustomer is the body for CreateCustomer.
type NewCustomer struct {
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Source string   `json:"source,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// CreateCustomer adds a customer and returns its ID.
func (c *Client) CreateCustomer(req NewCustomer) (string, error) {
	var out created
	if err := c.post("/api/customers", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(id string) error {
	return c.doDelete("/api/customers/" + url.PathEscape(id))
}

// CustomerChanges is the body for UpdateCustomer. Nil fields are left alone.
type CustomerChanges struct {
	Name   *string   `json:"name,omitempty"`
	Email  *string   `json:"email,omitempty"`
	Phone  *string   `json:"phone,omitempty"`
	Source *string   `json:"source,omitempty"`
	Notes  *string   `json:"notes,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}

// UpdateCustomer applies changes to a customer. The server refreshes the
// last contact time on every update.
func (c *Client) UpdateCustomer(id string, ch CustomerChanges) error {
	return c.send(http.MethodPatch, "/api/customers/"+url.PathEscape(id), ch, nil)
}

// Projects

// ListProjects returns all projects, or one customer's when customerID is set.
func (c *Client) ListProjects(customerID string) ([]*project.Project, error) {
	path := "/api/projects"
	if customerID != "" {
		path = "/api/customers/" + url.PathEscape(customerID) + "/projects"
	}
	var out []*project.Project
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject returns a project with its timeline.
func (c *Client) GetProject(id string) (*project.Project, error) {
	var out project.Project
	if err := c.get("/api/projects/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewProject is the body for CreateProject.
type NewProject struct {
	CustomerID string  `json:"customerId"`
	Title      string  `json:"title"`
	Type       string  `json:"type,omitempty"`
	ShootDate  string  `json:"shootDate,omitempty"`
	Location   string  `json:"location,omitempty"`
	Price      float64 `json:"price,omitempty"`
}

// CreateProject adds a project and returns its ID.
func (c *Client) CreateProject(req NewProject) (string, error) {
	var out created
	if err := c.post("/api/projects", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateProjectStatus moves a project to status, logging it on the timeline.
func (c *Client) UpdateProjectStatus(id, status, user string) error {
	body := map[string]string{"status": status, "user": user}
	return c.post("/api/projects/"+url.PathEscape(id)+"/status", body, nil)
}

// AddProjectNote appends a note to the project timeline.
func (c *Client) AddProjectNote(id, note, user string) error {
	body := map[string]string{"note": note, "user": user}
	return c.post("/api/projects/"+url.PathEscape(id)+"/notes", body, nil)
}

// AppendTimelineEntry appends a free-form event to the project timeline.
func (c *Client) AppendTimelineEntry(id, event, user string) error {
	body := map[string]string{"event": event, "user": user}
	return c.post("/api/projects/"+url.PathEscape(id)+"/timeline", body, nil)
}

// ProjectChanges is the body for UpdateProject. Nil fields are left alone.
type ProjectChanges struct {
	Title     *string  `json:"title,omitempty"`
	Type      *string  `json:"type,omitempty"`
	ShootDate *string  `json:"shootDate,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}

// UpdateProject applies changes to a project's details.
func (c *Client) UpdateProject(id string, ch ProjectChanges) error {
	return c.send(http.MethodPatch, "/api/projects/"+url.PathEscape(id), ch, nil)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(id string) error {
	return c.doDelete("/api/projects/" + url.PathEscape(id))
}

// Inquiries

// ListInquiries returns inquiries, only new ones when unread is set.
func (c *Client) ListInquiries(unread bool) ([]*inquiry.Inquiry, error) {
	var out []*inquiry.Inquiry
	if err := c.get(withFlag("/api/inquiries", "unread", unread), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInquiry returns an inquiry by ID.
func (c *Client) GetInquiry(id string) (*inquiry.Inquiry, error) {
	var out inquiry.Inquiry
	if err := c.get("/api/inquiries/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkInquiryRead marks a new inquiry as read.
func (c *Client) MarkInquiryRead(id string) error {
	return c.post("/api/inquiries/"+url.PathEscape(id)+"/read", nil, nil)
}

// UpdateInquiryStatus sets an inquiry's status.
func (c *Client) UpdateInquiryStatus(id, status string) error {
	return c.post("/api/inquiries/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, nil)
}

// DeleteInquiry removes an inquiry.
func (c *Client) DeleteInquiry(id string) error {
	return c.doDelete("/api/inquiries/" + url.PathEscape(id))
}

// Bookings

// ListBookings returns bookings, only confirmed future ones when upcoming is set.
func (c *Client) ListBookings(upcoming bool) ([]*booking.Booking, error) {
	var out []*booking.Booking
	if err := c.get(withFlag("/api/bookings", "upcoming", upcoming), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBooking returns a booking by ID.
func (c *Client) GetBooking(id string) (*booking.Booking, error) {
	var out booking.Booking
	if err := c.get("/api/bookings/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBookingStatus sets a booking's status.
func (c *Client) UpdateBookingStatus(id, status string) error {
	return c.post("/api/bookings/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, nil)
}

// NewBooking is the body for CreateBooking.
type NewBooking struct {
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Service    string `json:"service,omitempty"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status,omitempty"`
}

// CreateBooking adds a booking and returns its ID.
func (c *Client) CreateBooking(req NewBooking) (string, error) {
	var out created
	if err := c.post("/api/bookings", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// BookingChanges is the body for UpdateBooking. Nil fields are left alone.
type BookingChanges struct {
	Date    *string `json:"date,omitempty"`
	Time    *string `json:"time,omitempty"`
	Service *string `json:"service,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateBooking reschedules or edits a booking.
func (c *Client) UpdateBooking(id string, ch BookingChanges) error {
	return c.send(http.MethodPatch, "/api/bookings/"+url.PathEscape(id), ch, nil)
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(id string) error {
	return c.doDelete("/api/bookings/" + url.PathEscape(id))
}

// Quotes

// ListQuotes returns quotes, only pending ones when pending is set.
func (c *Client) ListQuotes(pending bool) ([]*quote.Quote, error) {
	var out []*quote.Quote
	if err := c.get(withFlag("/api/quotes", "pending", pending), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuote returns a quote by ID.
func (c *Client) GetQuote(id string) (*quote.Quote, error) {
	var out quote.Quote
	if err := c.get("/api/quotes/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetQuoteAmount prices a quote.
func (c *Client) SetQuoteAmount(id string, amount float64) error {
	return c.send(http.MethodPatch, "/api/quotes/"+url.PathEscape(id), map[string]float64{"amount": amount}, nil)
}

// UpdateQuoteStatus sets a quote's status.
func (c *Client) UpdateQuoteStatus(id, status string) error {
	return c.post("/api/quotes/"+url.PathEscape(id)+"/status", map[string]string{"status": status}, nil)
}

// DeleteQuote removes a quote.
func (c *Client) DeleteQuote(id string) error {
	return c.doDelete("/api/quotes/" + url.PathEscape(id))
}

// Coupons

// ListCoupons returns all coupons.
func (c *Client) ListCoupons() ([]*coupon.Coupon, error) {
	var out []*coupon.Coupon
	if err := c.get("/api/coupons", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCoupon returns a coupon by code.
func (c *Client) GetCoupon(code string) (*coupon.Coupon, error) {
	var out coupon.Coupon
	if err := c.get("/api/coupons/"+url.PathEscape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewCoupon is the body for CreateCoupon.
type NewCoupon struct {
	Code          string  `json:"code"`
	Description   string  `json:"description,omitempty"`
	DiscountType  string  `json:"discountType,omitempty"`
	DiscountValue float64 `json:"discountValue,omitempty"`
	ValidFrom     string  `json:"validFrom,omitempty"`
	ValidUntil    string  `json:"validUntil,omitempty"`
	UsageLimit    *int64  `json:"usageLimit,omitempty"`
}

// CreateCoupon adds a coupon and returns its normalized code.
func (c *Client) CreateCoupon(req NewCoupon) (string, error) {
	var out created
	if err := c.post("/api/coupons", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ValidateCoupon checks a code without redeeming it.
func (c *Client) ValidateCoupon(code string) (*coupon.Validation, error) {
	var out coupon.Validation
	if err := c.get("/api/public/coupons/"+url.PathEscape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RedeemCoupon counts one use of a coupon.
func (c *Client) RedeemCoupon(code string) error {
	return c.post("/api/coupons/"+url.PathEscape(code)+"/redeem", nil, nil)
}

// DeleteCoupon removes a coupon.
func (c *Client) DeleteCoupon(code string) error {
	return c.doDelete("/api/coupons/" + url.PathEscape(code))
}

// Analytics returns daily counters between start and end. Empty bounds
// take the server defaults.
func (c *Client) Analytics(start, end string) ([]*analytics.Day, error) {
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	path := "/api/analytics"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []*analytics.Day
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	return path + "?" + url.Values{key: {value}}.Encode()
}

func withFlag(path, key string, on bool) string {
	if !on {
		return path
	}
	return withQuery(path, key, "true")
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result any) error {
	return c.send(http.MethodGet, path, nil, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body any, result any) error {
	return c.send(http.MethodPost, path, body, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	return c.send(http.MethodDelete, path, nil, nil)
}

func (c *Client) send(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, result)
}

// do executes an HTTP request with auth header and handles errors.
func (c *Client) do(req *http.Request, result any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
