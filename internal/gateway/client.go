// Package gateway is the HTTP client for the bus booking backend API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hoponhub/internal/domain/models"
	"hoponhub/internal/utils"
)

const maxResponseBytes = 1 << 20

// Client talks to the backend. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL whose calls are bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// APIError is a well-formed non-2xx answer from the backend.
type APIError struct {
	Status           int
	Message          string
	UnavailableSeats []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error            string              `json:"error"`
	Message          string              `json:"message"`
	UnavailableSeats []models.SeatNumber `json:"unavailable_seats"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := utils.RequestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			switch {
			case eb.Error != "":
				apiErr.Message = eb.Error
			case eb.Message != "":
				apiErr.Message = eb.Message
			}
			for _, s := range eb.UnavailableSeats {
				apiErr.UnavailableSeats = append(apiErr.UnavailableSeats, s.String())
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// InitDB asks the backend to reset and seed its sample data.
func (c *Client) InitDB(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/init-db", nil, nil, nil)
}

// SearchBuses lists buses for a route. An empty result is not an error.
func (c *Client) SearchBuses(ctx context.Context, q models.SearchQuery) ([]models.BusOption, error) {
	query := url.Values{}
	query.Set("from", q.Origin)
	query.Set("to", q.Destination)
	query.Set("date", q.Date)

	var out struct {
		Buses []models.BusOption `json:"buses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/buses/search", query, nil, &out); err != nil {
		return nil, err
	}
	if out.Buses == nil {
		out.Buses = []models.BusOption{}
	}
	return out.Buses, nil
}

// ListSeats returns the seat map and unit price of a route.
func (c *Client) ListSeats(ctx context.Context, busID int64) (models.SeatList, error) {
	var out models.SeatList
	path := "/api/seats/" + strconv.FormatInt(busID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return models.SeatList{}, err
	}
	if out.Seats == nil {
		return models.SeatList{}, fmt.Errorf("GET %s: response has no seats", path)
	}
	return out, nil
}

// CreateBooking books the requested seats for one passenger.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingRecord, error) {
	var out models.BookingRecord
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &out); err != nil {
		return models.BookingRecord{}, err
	}
	return out, nil
}

// ProcessPayment settles bookings and returns the server's confirmation.
func (c *Client) ProcessPayment(ctx context.Context, req models.PaymentRequest) (models.ConfirmationRecord, error) {
	var out struct {
		Confirmation *models.ConfirmationRecord `json:"confirmation"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payment", nil, req, &out); err != nil {
		return models.ConfirmationRecord{}, err
	}
	if out.Confirmation == nil {
		return models.ConfirmationRecord{}, fmt.Errorf("POST /api/payment: response has no confirmation")
	}
	return *out.Confirmation, nil
}

// GetBooking fetches one booking by id.
func (c *Client) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	var out struct {
		Booking models.Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/booking/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return models.Booking{}, err
	}
	return out.Booking, nil
}
