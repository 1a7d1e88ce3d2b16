package yallakora

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-center/internal/domain/match"
	"github.com/riskibarqy/match-center/internal/platform/logging"
	"github.com/riskibarqy/match-center/internal/platform/resilience"
	"github.com/riskibarqy/match-center/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://www.yallakora.com/match-center"
	defaultLoadTimeout = 45 * time.Second
)

var tracer = otel.Tracer("match-center/external/yallakora")

type ClientConfig struct {
	BaseURL        string
	Fetcher        DocumentFetcher
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// RequestsPerSecond caps outbound page loads. Zero or less disables the cap.
	RequestsPerSecond float64
	Burst             int
	// LoadTimeout bounds one shared page load, rate limit wait included.
	// Defaults to 45s.
	LoadTimeout time.Duration
}

// Client scrapes the match center listing for a date.
type Client struct {
	baseURL string
	fetcher DocumentFetcher
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	limiter     *rate.Limiter
	loadTimeout time.Duration
	flight      resilience.SingleFlight[[]match.RawRecord]
}

var _ match.Source = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(HTTPFetcherConfig{})
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}

	return &Client{
		baseURL:     baseURL,
		fetcher:     fetcher,
		logger:      logger.Named("yallakora"),
		breaker:     resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		limiter:     limiter,
		loadTimeout: loadTimeout,
	}
}

// PageURL interpolates dateKey verbatim; the upstream decides what it accepts.
func (c *Client) PageURL(dateKey string) string {
	return c.baseURL + "?date=" + dateKey
}

// FetchMatches returns one record per match card on the listing for dateKey.
// Failures are returned as-is; callers decide how to degrade. Concurrent
// callers for the same date share one page load, and a caller whose ctx ends
// stops waiting without failing the load for the others.
func (c *Client) FetchMatches(ctx context.Context, dateKey string) ([]match.RawRecord, error) {
	ctx, span := tracer.Start(ctx, "yallakora.Client.FetchMatches")
	defer span.End()

	pageURL := c.PageURL(dateKey)
	span.SetAttributes(attribute.String("match_center.date", dateKey))

	records, err, shared := c.flight.DoContext(ctx, pageURL, func(loadCtx context.Context) ([]match.RawRecord, error) {
		loadCtx, cancel := context.WithTimeout(loadCtx, c.loadTimeout)
		defer cancel()

		var out []match.RawRecord
		execErr := c.breaker.Execute(func() error {
			var fetchErr error
			out, fetchErr = c.fetchAndParse(loadCtx, pageURL)
			return fetchErr
		}, isCircuitFailure)
		return out, execErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "match center circuit breaker rejected request", "state", c.breaker.State(), "date", dateKey)
			return nil, fmt.Errorf("%w: match center is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("match_center.records", len(records)),
		attribute.Bool("match_center.shared", shared),
	)
	return records, nil
}

func (c *Client) fetchAndParse(ctx context.Context, pageURL string) ([]match.RawRecord, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, crerr.Wrap(err, "wait for outbound request slot")
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := c.fetcher.FetchDocument(ctx, pageURL, buf); err != nil {
		c.logger.WarnContext(ctx, "match center request failed", "url", pageURL, "error", err)
		return nil, crerr.Wrapf(err, "fetch %s", pageURL)
	}

	records, err := ParseDocument(bytes.NewReader(buf.B))
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "match center page parsed", "url", pageURL, "bytes", buf.Len(), "records", len(records))
	return records, nil
}

func isCircuitFailure(err error) bool {
	if crerr.Is(err, context.Canceled) {
		return false
	}
	return crerr.Is(err, errTransient)
}
