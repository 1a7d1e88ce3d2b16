package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-center/external/yallakora"
	"github.com/riskibarqy/match-center/internal/config"
	"github.com/riskibarqy/match-center/internal/domain/match"
	"github.com/riskibarqy/match-center/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-center/internal/platform/cache"
	"github.com/riskibarqy/match-center/internal/platform/logging"
	"github.com/riskibarqy/match-center/internal/platform/resilience"
	"github.com/riskibarqy/match-center/internal/usecase"
)

// NewFetcher picks the document fetcher for the configured fetch mode.
func NewFetcher(cfg config.Config) (yallakora.DocumentFetcher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.MatchCenterFetchMode)) {
	case "", config.FetchModeHTTP:
		return yallakora.NewHTTPFetcher(yallakora.HTTPFetcherConfig{
			Timeout:      cfg.MatchCenterTimeout,
			UserAgent:    cfg.MatchCenterUserAgent,
			MaxBodyBytes: cfg.MatchCenterMaxBodyBytes,
		}), nil
	case config.FetchModeBrowser:
		return yallakora.NewBrowserFetcher(yallakora.BrowserFetcherConfig{
			Timeout:      cfg.MatchCenterTimeout,
			UserAgent:    cfg.MatchCenterUserAgent,
			WaitSelector: cfg.MatchCenterBrowserWaitSelector,
			MaxBodyBytes: cfg.MatchCenterMaxBodyBytes,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported match center fetch mode %q", cfg.MatchCenterFetchMode)
	}
}

// NewMatchService wires the extractor, the optional raw listing cache and the
// normalizer into one service.
func NewMatchService(cfg config.Config, logger *logging.Logger) (*usecase.MatchService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}

	source := yallakora.NewClient(yallakora.ClientConfig{
		BaseURL: cfg.MatchCenterBaseURL,
		Fetcher: fetcher,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.MatchCenterCircuitEnabled,
			FailureThreshold: cfg.MatchCenterCircuitFailureCount,
			OpenTimeout:      cfg.MatchCenterCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.MatchCenterCircuitHalfOpenMaxReq,
		},
		RequestsPerSecond: cfg.MatchCenterRateLimitRPS,
		Burst:             cfg.MatchCenterRateLimitBurst,
	})

	var rawCache *cache.Store[[]match.RawRecord]
	if cfg.CacheEnabled {
		rawCache = cache.NewStore[[]match.RawRecord](cfg.CacheTTL)
	}

	return usecase.NewMatchService(source, usecase.MatchServiceConfig{
		Thresholds: match.Thresholds{FinishedAfter: cfg.MatchFinishedAfter},
		Location:   cfg.MatchCenterTimezone,
		RawCache:   rawCache,
		Logger:     logger,
	}), nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	matchSvc, err := NewMatchService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build match service: %w", err)
	}

	handler := httpapi.NewHandler(matchSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
