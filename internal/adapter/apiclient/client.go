// Package apiclient talks to the tour booking JSON API.
//
// Every response body is decoded as JSON regardless of the status code and
// inspected for its boolean "success" field. A false value becomes a
// *domain.RejectedError carrying the server message; network failures and
// undecodable bodies are wrapped with ErrTransport.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

var ErrTransport = errors.New("transport failure")

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	BookingCode string          `json:"booking_code"`
	TourID      int64           `json:"tour_id"`
	Data        json.RawMessage `json:"data"`
}

func (c *Client) Book(ctx context.Context, req domain.BookingRequest) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/book", nil, req)
	if err != nil {
		return "", err
	}
	return env.BookingCode, nil
}

func (c *Client) CreateTour(ctx context.Context, in domain.TourInput) (int64, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/create_tour", nil, in)
	if err != nil {
		return 0, err
	}
	return env.TourID, nil
}

func (c *Client) DeleteTour(ctx context.Context, tourID int64) error {
	_, err := c.do(ctx, http.MethodPost, "/api/delete_tour", nil, map[string]int64{"tour_id": tourID})
	return err
}

func (c *Client) TourBookings(ctx context.Context, tourID int64) ([]domain.BookingRecord, error) {
	var records []domain.BookingRecord
	err := c.get(ctx, "/api/get_tour_bookings", tourQuery(tourID), &records)
	return records, err
}

func (c *Client) SearchBookings(ctx context.Context, q string) ([]domain.BookingRecord, error) {
	var records []domain.BookingRecord
	err := c.get(ctx, "/api/search_booking", url.Values{"q": {q}}, &records)
	return records, err
}

func (c *Client) Tours(ctx context.Context) ([]domain.TourSummary, error) {
	var tours []domain.TourSummary
	err := c.get(ctx, "/api/tours", nil, &tours)
	return tours, err
}

func (c *Client) Tour(ctx context.Context, tourID int64) (*domain.TourDetail, error) {
	var tour domain.TourDetail
	if err := c.get(ctx, "/api/tour", tourQuery(tourID), &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: decode %s data: %w", ErrTransport, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: status %d: invalid json: %w", ErrTransport, method, path, resp.StatusCode, err)
	}

	if !env.Success {
		return nil, &domain.RejectedError{Message: env.Message}
	}

	return &env, nil
}

func tourQuery(tourID int64) url.Values {
	return url.Values{"tour_id": {strconv.FormatInt(tourID, 10)}}
}
