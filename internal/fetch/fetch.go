// Package fetch downloads job postings from the web and reduces them to
// plain text suitable for skill matching.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"resumatch/internal/errors"
)

const (
	// DefaultUserAgent identifies the client; some job boards reject
	// requests without a browser-like agent string.
	DefaultUserAgent = "Mozilla/5.0 (compatible; resumatch/1.0)"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize = 5 << 20 // 5 MiB
)

// Chrome of a page that never carries posting text.
var strippedSelectors = "script, style, header, footer, nav"

// Options configures a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

// Fetcher retrieves job posting pages over HTTP.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// New creates a Fetcher with the given options.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	return &Fetcher{
		client:      &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		maxBodySize: opts.MaxBodySize,
	}
}

// PageText fetches rawURL and returns the page's visible text with script,
// style, and navigation chrome removed and whitespace collapsed to single
// spaces. A malformed or non-HTTP URL is a validation error; every failure
// past that point returns a FETCH_FAILED error, which callers are expected
// to treat as non-fatal and continue with empty job text.
func (f *Fetcher) PageText(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"job posting URL must be an http or https URL", err).
			WithContext("url", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fetchError(rawURL, "failed to build request", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(rawURL, "failed to fetch job posting", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fetchError(rawURL, fmt.Sprintf("unexpected status %d fetching job posting", resp.StatusCode), nil)
	}

	body := io.LimitReader(resp.Body, f.maxBodySize)
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fetchError(rawURL, "failed to parse job posting HTML", err)
	}

	doc.Find(strippedSelectors).Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(text), " "), nil
}

// IsFetchError reports whether err came from a failed page fetch.
func IsFetchError(err error) bool {
	return errors.HasCode(err, errors.ErrCodeFetchFailed)
}

func fetchError(rawURL, message string, cause error) *errors.AppError {
	return errors.NewNetworkError(errors.ErrCodeFetchFailed, message, cause).
		WithContext("url", rawURL)
}
