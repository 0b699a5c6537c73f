package servicenow

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the ServiceNow Table API with HTTP basic authentication.
// Credentials are fixed at construction; each call builds an independent
// request and shares no mutable state, so a Client is safe for concurrent use.
type Client struct {
	BaseURL  string
	Username string
	Password string

	// InsecureTLS disables certificate verification. Only useful against
	// instances with self-signed certificates.
	InsecureTLS bool

	// HTTPClient overrides the default client (30s timeout). Leave nil
	// unless the caller needs its own transport.
	HTTPClient *http.Client
}

// StatusError reports a ServiceNow response with a status other than 200 OK.
// The response body is not read on this path.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("servicenow: unexpected status code %d", e.Code)
}

// NewClientFromEnv builds a Client from the SNOW_API_URL, SNOW_API_USER and
// SNOW_API_PWD environment variables.
func NewClientFromEnv() (*Client, error) {
	baseURL := os.Getenv("SNOW_API_URL")
	username := os.Getenv("SNOW_API_USER")
	password := os.Getenv("SNOW_API_PWD")
	if baseURL == "" || username == "" || password == "" {
		return nil, fmt.Errorf("servicenow: SNOW_API_URL, SNOW_API_USER and SNOW_API_PWD must be set")
	}
	return &Client{BaseURL: baseURL, Username: username, Password: password}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	if c.InsecureTLS {
		return &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
	return &http.Client{Timeout: defaultTimeout}
}

// get performs a single GET against url and returns the response body.
// Any status other than 200 yields a *StatusError.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("servicenow: build request: %w", err)
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("servicenow: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("servicenow: read response body: %w", err)
	}
	return body, nil
}
