package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound reports the inventory holds no item with the given id.
	ErrNotFound = errors.New("inventory service: item not found")
	// ErrUnavailable reports the call itself failed or the service
	// answered with an unexpected status.
	ErrUnavailable = errors.New("inventory service: unavailable")
)

// Book is the catalog entry embedded in an inventory item.
type Book struct {
	ID    int64   `json:"bookId"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// Item is the wire representation of a book inventory row.
type Item struct {
	ID             int64 `json:"bookInventoryId"`
	Stock          int32 `json:"stock"`
	DeliveryInDays int32 `json:"deliveryInDays"`
	Book           Book  `json:"bookId"`
}

// Client is a thin typed gateway to the remote book inventory service. It
// offers no retry, no caching, and no concurrency token: updates write whole
// item snapshots back.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates the inventory client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inventory base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GetItem fetches the current snapshot of an inventory item.
func (c *Client) GetItem(ctx context.Context, id int64) (*Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/book/inventory/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build inventory request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	default:
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return &item, nil
}

// UpdateItem writes an item snapshot back to the inventory service.
func (c *Client) UpdateItem(ctx context.Context, item Item) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode inventory item: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/book/inventory", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build inventory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: id %d", ErrNotFound, item.ID)
	default:
		return fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}
}
