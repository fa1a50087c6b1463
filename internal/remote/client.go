// Package remote is the HTTP client for the merchant API. The coordinator
// talks to the store exclusively through this package.
package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"merchantdesk/internal/model"
)

// Error represents a failed call against the merchant API: a non-2xx
// response or a transport failure. The server's error message is carried
// verbatim so callers can surface it unchanged.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

type errorResponse struct {
	Error string `json:"error"`
}

type deleteResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// Client talks to the merchant REST API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new merchant API client instance
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// List retrieves all merchants, ordered by ID ascending
func (c *Client) List() ([]model.Merchant, error) {
	body, err := c.do(http.MethodGet, "/merchants", nil)
	if err != nil {
		return nil, err
	}

	var merchants []model.Merchant
	if err := json.Unmarshal(body, &merchants); err != nil {
		return nil, err
	}
	return merchants, nil
}

// Get retrieves a single merchant. A nil merchant with a nil error means the
// ID does not exist; the API reports that as a 200 null, not as a failure.
func (c *Client) Get(id uint) (*model.Merchant, error) {
	body, err := c.do(http.MethodGet, fmt.Sprintf("/merchants/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var merchant *model.Merchant
	if err := json.Unmarshal(body, &merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

// Create creates a new merchant and returns it with its server-assigned ID
func (c *Client) Create(name, country string) (*model.Merchant, error) {
	payload := map[string]string{
		"merchant_name": name,
		"country":       country,
	}

	body, err := c.do(http.MethodPost, "/merchants", payload)
	if err != nil {
		return nil, err
	}

	var merchant model.Merchant
	if err := json.Unmarshal(body, &merchant); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// Update replaces the name and country of an existing merchant
func (c *Client) Update(id uint, name, country string) (*model.Merchant, error) {
	payload := map[string]string{
		"merchant_name": name,
		"country":       country,
	}

	body, err := c.do(http.MethodPut, fmt.Sprintf("/merchants/%d", id), payload)
	if err != nil {
		return nil, err
	}

	var merchant model.Merchant
	if err := json.Unmarshal(body, &merchant); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// Delete removes a merchant. The API is idempotent here: deleting an absent
// ID still succeeds.
func (c *Client) Delete(id uint) error {
	body, err := c.do(http.MethodDelete, fmt.Sprintf("/merchants/%d", id), nil)
	if err != nil {
		return err
	}

	var resp deleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return err
	}
	return nil
}

// do performs a single request and returns the response body, converting
// non-2xx responses into *Error with the server's message.
func (c *Client) do(method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
			return nil, &Error{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			}
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	return body, nil
}
