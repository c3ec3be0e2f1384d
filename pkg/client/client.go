package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fonsecabarber/barber-api/internal/model"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the barbershop API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Health pings the health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Content fetches the aggregate document. Lists absent from the response stay nil.
func (c *Client) Content(ctx context.Context) (model.ContentDocument, error) {
	var doc model.ContentDocument
	err := c.do(ctx, http.MethodGet, "/api/content", nil, &doc)
	return doc, err
}

func (c *Client) CreateAppointment(ctx context.Context, req model.CreateAppointmentRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/appointments", req, nil)
}

func (c *Client) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var list []model.Appointment
	err := c.do(ctx, http.MethodGet, "/api/admin/appointments", nil, &list)
	return list, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/appointments/%d", id),
		model.UpdateAppointmentStatusRequest{Status: status}, nil)
}

func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/appointments/%d", id), nil, nil)
}

func (c *Client) UpdateSettings(ctx context.Context, settings map[string]string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/settings", model.UpdateSettingsRequest{Settings: settings}, nil)
}

func (c *Client) ReplaceServices(ctx context.Context, services []model.Service) error {
	return c.do(ctx, http.MethodPost, "/api/admin/services", model.ReplaceServicesRequest{Services: services}, nil)
}
