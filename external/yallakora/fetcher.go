package yallakora

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 8 << 20
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var (
	errTransient        = crerr.New("match center transient failure")
	errBodyTooLarge     = crerr.New("match center document exceeds size limit")
	errUnexpectedStatus = crerr.New("match center returned unexpected status")
)

// DocumentFetcher writes the listing page found at pageURL into w.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, pageURL string, w io.Writer) error
}

type HTTPFetcherConfig struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int
}

// HTTPFetcher issues exactly one GET per fetch.
type HTTPFetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

func NewHTTPFetcher(cfg HTTPFetcherConfig) *HTTPFetcher {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &HTTPFetcher{
		httpClient:   httpClient,
		userAgent:    userAgent,
		maxBodyBytes: int64(maxBodyBytes),
	}
}

func (f *HTTPFetcher) FetchDocument(ctx context.Context, pageURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml")
	req.Header.Set("user-agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		statusErr := crerr.Mark(crerr.Newf("upstream status=%d", resp.StatusCode), errUnexpectedStatus)
		if isRetryableStatus(resp.StatusCode) {
			return crerr.Mark(statusErr, errTransient)
		}
		return statusErr
	}

	n, err := io.Copy(w, io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if n > f.maxBodyBytes {
		return crerr.Wrapf(errBodyTooLarge, "limit=%d bytes", f.maxBodyBytes)
	}

	return nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
