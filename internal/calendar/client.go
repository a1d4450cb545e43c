package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"reservas/internal/models"
)

// ReservationsPath is the route serving the normalized reservations.
const ReservationsPath = "/api/reservas"

// ReservationsAPI is what the presenter loads reservations from.
type ReservationsAPI interface {
	ListReservations(ctx context.Context) (*models.Envelope, error)
}

// APIClient calls GET /api/reservas on a running server.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListReservations fetches the envelope. Any non-2xx status is an error.
func (c *APIClient) ListReservations(ctx context.Context) (*models.Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ReservationsPath, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("reservations api: http %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("reservations api: http %d", resp.StatusCode)
	}

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("reservations api: decode: %w", err)
	}
	return &env, nil
}
