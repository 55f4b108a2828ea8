package receitaws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://www.receitaws.com.br/v1/CNPJ/"

	// Retry policy for transient failures. The public API rate-limits
	// aggressively, so attempts are few and spaced out.
	maxAttempts = 3
	backoffStep = 500 * time.Millisecond
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Lookup fetches the cadastral record for a normalized CNPJ. Transport
// errors and 5xx responses are retried with linear backoff; an explicit
// error payload is a definitive answer and is not.
func (c *Client) Lookup(ctx context.Context, cnpj string) (*Result, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * backoffStep):
			}
		}

		result, retryable, err := c.lookupOnce(ctx, cnpj)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) lookupOnce(ctx context.Context, cnpj string) (*Result, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+cnpj, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, fmt.Errorf("receitaws failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	var payload companyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, err
	}

	// The API answers 200 with an error payload for unknown CNPJs.
	if payload.Status != "" && payload.Status != "OK" {
		msg := payload.Message
		if msg == "" {
			msg = "receitaws returned a non-OK status"
		}
		return nil, false, fmt.Errorf("receitaws: %s", msg)
	}

	return payload.toResult(), false, nil
}
