package radar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means the pre-shared token or the endpoint URL is
	// missing. This is an operator fault, not a per-request condition.
	ErrNotConfigured = errors.New("radar client not configured: set API_TOKEN and URL_RADAR")

	// ErrTimeout wraps a lookup that exceeded the upstream's documented
	// worst case of 300 seconds.
	ErrTimeout = errors.New("radar lookup timed out")
)

// The upstream documents responses taking up to 300 seconds. The client
// timeout sits just above that so slow-but-successful answers survive.
const lookupTimeout = 305 * time.Second

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: lookupTimeout},
	}
}

// Lookup queries the habilitation status for a normalized CNPJ.
// A non-nil Result with all fields blank means the upstream answered but
// knows nothing about the CNPJ; callers label that case, not the client.
func (c *Client) Lookup(ctx context.Context, cnpj string) (*Result, error) {
	if c.token == "" || c.endpoint == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("cnpj", cnpj)
	form.Set("token", c.token)
	form.Set("timeout", "300")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("radar failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload radarResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return payload.toResult(), nil
}
