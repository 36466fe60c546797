// Package practicum implements the homework status API client.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework-status-bot/internal/domain"
	"homework-status-bot/internal/domain/ports/adapter"
	"homework-status-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.HomeworkAPI = (*Client)(nil)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	log        *zerolog.Logger
}

// NewClient builds a client for endpoint authenticating with an OAuth token.
func NewClient(endpoint, token string, timeout time.Duration, logger *zerolog.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("practicum endpoint: %w", err)
	}
	if token == "" {
		return nil, errors.New("practicum token is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	compLog := logger.With().Str("component", "PracticumClient").Logger()
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        &compLog,
	}, nil
}

// GetStatuses issues one GET with from_date and returns the decoded JSON body.
// A non-200 answer is a KindEndpointStatus error; anything that prevents reading a
// JSON body is KindEndpointUnreachable.
func (c *Client) GetStatuses(ctx context.Context, fromDate int64) (any, error) {
	const op = "get homework statuses"

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, domain.NewCycleError(domain.KindEndpointUnreachable, op, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, domain.NewCycleError(domain.KindEndpointUnreachable, op, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveAPIRequest(0, time.Since(start))
		return nil, domain.NewCycleError(domain.KindEndpointUnreachable, op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveAPIRequest(resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.log.Error().
			Str("endpoint", c.endpoint).
			Int("status_code", resp.StatusCode).
			Msg("homework endpoint is unavailable")
		return nil, &domain.CycleError{Kind: domain.KindEndpointStatus, Op: op, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewCycleError(domain.KindEndpointUnreachable, op, fmt.Errorf("read response: %w", err))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewCycleError(domain.KindEndpointUnreachable, op, fmt.Errorf("decode response: %w", err))
	}
	c.log.Debug().Int64("from_date", fromDate).Int("bytes", len(body)).Msg("homework statuses received")
	return payload, nil
}
