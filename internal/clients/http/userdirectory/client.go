package userdirectory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound reports the directory holds no user with the given id.
	ErrNotFound = errors.New("user directory: user not found")
	// ErrUnavailable reports the call itself failed or the directory
	// answered with an unexpected status.
	ErrUnavailable = errors.New("user directory: unavailable")
)

// User is the wire representation served by the user directory.
type User struct {
	ID        int64  `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Client is a thin typed gateway to the remote user directory. Each call is
// a single synchronous round trip with no retry or caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New instantiates the directory client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("user directory base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/user/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build user directory request: %w", err)
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

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return &user, nil
}
