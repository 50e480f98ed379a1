// Package marketapi provides a resilient client for the marketplace listing API
package marketapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/logger"
)

const (
	baseURLDefault   = "https://nft-api.decentraland.org"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "marketbrowse"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
	maxBackoff       = 10 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors, rate limits and transient server errors
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal listing API client with retries and rate limit handling
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("marketapi"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// sleepCtx waits for d or until ctx ends, whichever comes first
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pause sleeps between attempts, a context that ends mid wait aborts the request
func (c *Client) pause(ctx context.Context, d time.Duration) error {
	if err := c.sleep(ctx, d); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "marketapi request canceled while backing off")
	}
	return nil
}

// Do issues a GET for path with q, retrying transport errors, 429 and 5xx
// the caller owns the returned body
func (c *Client) Do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	target := c.opts.BaseURL + path
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeUnavailable, "marketapi request canceled")
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "marketapi new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "marketapi do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("marketapi transport error retrying")
			if err := c.pause(ctx, back); err != nil {
				return nil, err
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("marketapi http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			// upstream hints are capped like our own backoff
			wait := min(retryAfter(resp.Header, c.now()), maxBackoff)
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "marketapi rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("marketapi rate limited backing off")
			if err := c.pause(ctx, wait); err != nil {
				return nil, err
			}
			attempts++
			continue
		case resp.StatusCode >= http.StatusInternalServerError:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "marketapi transient server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Int("status", resp.StatusCode).Msg("marketapi transient error retrying")
			if err := c.pause(ctx, back); err != nil {
				return nil, err
			}
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, statusError(resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
