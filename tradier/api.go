package tradier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xhhuango/json"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.tradier.com/v1"
	DateLayout     = "2006-01-02"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tradier: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewClient(token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// GetQuotes fetches price history for symbol between start and end
// inclusive. interval is "daily", "weekly" or "monthly".
func (c *Client) GetQuotes(ctx context.Context, symbol string, start, end time.Time, interval string) (*QuoteHistory, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("start", start.Format(DateLayout))
	q.Set("end", end.Format(DateLayout))
	q.Set("session_filter", "all")

	quoteHistory := &QuoteHistory{}
	if err := c.get(ctx, "/markets/history", q, quoteHistory); err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	return quoteHistory, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	req.Header.Add("Accept", "application/json")

	c.logger().Debug("tradier request", zap.String("path", path), zap.String("query", query.Encode()))
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response data: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
