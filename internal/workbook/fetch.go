package workbook

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FetchOptions configures remote workbook downloads.
type FetchOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	Limiter    *rate.Limiter
}

// Fetcher downloads report workbooks over HTTP with retry and rate limiting.
type Fetcher struct {
	client  *http.Client
	opts    FetchOptions
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "triage-cli"
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(2, 2)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: limiter,
	}
}

// Fetch downloads the workbook at url and returns it as an in-memory Source.
// Server errors and 429s are retried with exponential backoff and jitter.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Source, error) {
	var lastErr error

	for attempt := 0; attempt <= f.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			backoff += time.Duration(rand.Int64N(int64(time.Second)))
			zap.L().Debug("workbook: retrying fetch",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return Source{}, eris.Wrap(ctx.Err(), "workbook: fetch cancelled")
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return Source{}, eris.Wrap(err, "workbook: fetch rate limit wait")
		}

		data, retryable, err := f.fetchOnce(ctx, url)
		if err == nil {
			return FromBytes(url, data), nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return Source{}, eris.Wrapf(lastErr, "workbook: fetch %s", url)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (data []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, eris.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, eris.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, eris.Wrap(err, "read body")
		}
		return data, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, eris.Errorf("status %d", resp.StatusCode)
	default:
		return nil, false, eris.Errorf("status %d", resp.StatusCode)
	}
}
