// Package fetch retrieves the published-spreadsheet CSV exports. Failures
// are absorbed here: any transport error, timeout or non-200 response
// yields an empty string so one unavailable source never fails the batch.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches one sheet tab per call, paced by a token-bucket limiter
// so a full reload does not burst against the sheets endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string        // published-sheet base URL, without the gid parameter
	Timeout time.Duration // per-request timeout
	RPS     float64       // sustained requests per second
	Burst   int           // burst allowance
}

// NewClient creates a sheet fetch client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 4
	}
	if opts.Burst <= 0 {
		opts.Burst = 6
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		baseURL:    opts.BaseURL,
		logger:     logger.With(slog.String("component", "fetch")),
	}
}

// Fetch retrieves the tab identified by gid and returns its body text.
// Every failure mode returns "": the tokenizer downstream treats an empty
// payload (or the HTML error page a sheets endpoint serves when a tab is
// unavailable) as an empty source.
func (c *Client) Fetch(ctx context.Context, gid string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.WarnContext(ctx, "fetch cancelled while rate limited",
			slog.String("gid", gid),
			slog.String("error", err.Error()))
		return ""
	}

	url := c.baseURL + "&gid=" + gid
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch request build failed",
			slog.String("gid", gid),
			slog.String("error", err.Error()))
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch failed, substituting empty source",
			slog.String("gid", gid),
			slog.String("error", err.Error()))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "fetch returned non-200, substituting empty source",
			slog.String("gid", gid),
			slog.Int("status", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch body read failed",
			slog.String("gid", gid),
			slog.String("error", err.Error()))
		return ""
	}
	return string(body)
}
