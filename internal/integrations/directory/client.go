package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client cliente HTTP do serviço de cadastro de moradores
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient cria o cliente do serviço de cadastro
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetResident busca um morador pelo ID
func (c *Client) GetResident(ctx context.Context, residentID int64) (*Resident, error) {
	url := fmt.Sprintf("%s/internal/residents/%d", c.baseURL, residentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// segue o fluxo
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid resident ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrResidentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var resident Resident
	if err := json.NewDecoder(resp.Body).Decode(&resident); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &resident, nil
}

// GetResidentWithGracefulDegradation busca o morador tolerando queda do
// serviço de cadastro. Morador inexistente continua sendo erro de
// negócio; indisponibilidade vira ErrServiceDegraded para quem chama
// decidir se consegue viver sem nome e email.
func (c *Client) GetResidentWithGracefulDegradation(ctx context.Context, residentID int64) (*Resident, error) {
	resident, err := c.GetResident(ctx, residentID)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			c.log.Info("Resident %d not found in directory", residentID)
			return nil, err
		}

		c.log.Error("Directory unavailable, applying graceful degradation for resident_id=%d: %v", residentID, err)
		return nil, fmt.Errorf("%w: resident_id=%d, error=%v", ErrServiceDegraded, residentID, err)
	}

	return resident, nil
}
