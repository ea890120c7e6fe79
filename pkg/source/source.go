// Package source loads raw STL bytes from a local path, standard input or an
// HTTP(S) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Stdin is the location that reads from standard input
const Stdin = "-"

// ErrTooLarge is returned when an input exceeds the configured size limit
var ErrTooLarge = errors.New("input exceeds size limit")

// Loader reads inputs. Only HTTP fetches are retried; local reads fail fast.
type Loader struct {
	client          *http.Client
	stdin           io.Reader
	logger          *zap.Logger
	maxBytes        int64
	maxRetries      uint
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient sets the client used for URL inputs
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithStdin replaces the reader used for the "-" location
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithLogger sets the logger for retry diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxBytes caps the size of a single input
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		l.maxBytes = n
	}
}

// WithRetries configures exponential backoff for HTTP fetches. maxRetries
// counts attempts after the first one.
func WithRetries(maxRetries uint, initialInterval, maxElapsed time.Duration) Option {
	return func(l *Loader) {
		l.maxRetries = maxRetries
		l.initialInterval = initialInterval
		l.maxElapsed = maxElapsed
	}
}

// NewLoader creates a loader with the given options
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:          &http.Client{Timeout: 30 * time.Second},
		stdin:           os.Stdin,
		logger:          zap.NewNop(),
		maxBytes:        512 << 20,
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      2 * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsURL reports whether location names an HTTP(S) resource
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the full contents of location
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	switch {
	case location == Stdin:
		return l.readLimited(l.stdin)
	case IsURL(location):
		return l.fetch(ctx, location)
	default:
		return l.readFile(location)
	}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return l.readLimited(file)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = l.initialInterval

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		return l.fetchOnce(ctx, url)
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(l.maxRetries+1),
		backoff.WithMaxElapsedTime(l.maxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			l.logger.Warn("Fetch failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return data, nil
}

func (l *Loader) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	default:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := l.readLimited(resp.Body)
	if errors.Is(err, ErrTooLarge) {
		return nil, backoff.Permanent(err)
	}
	return data, err
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.maxBytes)
	}
	return data, nil
}
