package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-center/internal/domain/match"
	"github.com/riskibarqy/match-center/internal/platform/cache"
	"github.com/riskibarqy/match-center/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

const (
	fetchFailedPrefix   = "Failed to fetch matches: "
	rawCacheKeyPrefix   = "matches:"
	defaultBatchWorkers = 4
	MaxNormalizeRecords = 500
)

// rawEchoAPI keeps non-ASCII and markup characters as-is and sorts keys so the
// diagnostic echo is stable between requests.
var rawEchoAPI = sonic.Config{SortMapKeys: true}.Froze()

// MatchCenter is one snapshot of the listing for a date.
type MatchCenter struct {
	Date           string        `json:"date"`
	Leagues        match.Grouped `json:"leagues"`
	RawMatchesJSON string        `json:"raw_matches_json,omitempty"`
	Error          string        `json:"error,omitempty"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

type MatchServiceConfig struct {
	// Clock defaults to time.Now.
	Clock      func() time.Time
	Thresholds match.Thresholds
	Location   *time.Location
	// RawCache is optional; nil fetches on every call.
	RawCache     *cache.Store[[]match.RawRecord]
	BatchWorkers int
	Logger       *logging.Logger
}

type MatchService struct {
	source       match.Source
	normalizer   *match.Normalizer
	clock        func() time.Time
	rawCache     *cache.Store[[]match.RawRecord]
	batchWorkers int
	logger       *logging.Logger
}

func NewMatchService(source match.Source, cfg MatchServiceConfig) *MatchService {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.BatchWorkers
	if workers <= 0 {
		workers = defaultBatchWorkers
	}

	return &MatchService{
		source: source,
		normalizer: match.NewNormalizer(match.NormalizerConfig{
			Clock:      clock,
			Thresholds: cfg.Thresholds,
			Location:   cfg.Location,
		}),
		clock:        clock,
		rawCache:     cfg.RawCache,
		batchWorkers: workers,
		logger:       logger,
	}
}

// GetMatchesForDate builds the snapshot for dateKey. Extraction failures do not
// fail the call: the snapshot carries no matches and an explanatory Error.
// An error is returned only when ctx ends before the snapshot is built.
func (s *MatchService) GetMatchesForDate(ctx context.Context, dateKey string) (MatchCenter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchesForDate")
	defer span.End()

	dateKey = strings.TrimSpace(dateKey)
	out := MatchCenter{
		Date:        dateKey,
		Leagues:     match.NewGrouped(),
		GeneratedAt: s.clock(),
	}
	s.logger.DebugContext(ctx, "building match center snapshot", "date", dateKey, "server_time", out.GeneratedAt)

	records := []match.RawRecord{}
	if dateKey != "" {
		fetched, err := s.fetchRecords(ctx, dateKey)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return MatchCenter{}, ctxErr
			}
			out.Error = fetchFailedPrefix + err.Error()
			s.logger.ErrorContext(ctx, "fetch matches failed", "date", dateKey, "error", err)
		} else if fetched != nil {
			records = fetched
		}
	}

	normalized := s.normalizer.NormalizeAll(match.InputsFromRecords(records), dateKey)
	for i, m := range normalized {
		if m.HomeScore != "" && m.AwayScore == "" {
			s.logger.DebugContext(ctx, "combined score not split", "date", dateKey, "index", i, "home_score", m.HomeScore)
		}
	}
	out.Leagues = match.Group(normalized)
	out.RawMatchesJSON = encodeRawEcho(records, s.logger)

	s.logger.InfoContext(ctx, "match center snapshot built",
		"date", dateKey,
		"records", len(records),
		"leagues", len(out.Leagues.Leagues),
		"failed", out.Error != "",
	)
	return out, nil
}

// GetMatchesForDates builds one independent snapshot per date on a bounded
// worker pool. Results follow the order of dateKeys. A panic while building
// one snapshot is returned as an error instead of crashing the pool.
func (s *MatchService) GetMatchesForDates(ctx context.Context, dateKeys []string) ([]MatchCenter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchesForDates")
	defer span.End()

	if len(dateKeys) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	workers := s.batchWorkers
	if workers > len(dateKeys) {
		workers = len(dateKeys)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]MatchCenter, len(dateKeys))
	errs := make([]error, len(dateKeys))
	var wg sync.WaitGroup
	for i, dateKey := range dateKeys {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			var catcher panics.Catcher
			catcher.Try(func() {
				results[i], errs[i] = s.GetMatchesForDate(ctx, dateKey)
			})
			if recovered := catcher.Recovered(); recovered != nil {
				s.logger.ErrorContext(ctx, "snapshot panicked", "date", dateKey, "panic", recovered.Value)
				errs[i] = recovered.AsError()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit snapshot to worker pool: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("snapshot date=%s: %w", dateKeys[i], err)
		}
	}
	return results, nil
}

// NormalizeRecords classifies caller-supplied records of any shape. Items that
// are not objects are read as "home away" labels.
func (s *MatchService) NormalizeRecords(ctx context.Context, dateKey string, items []any) (match.Grouped, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.NormalizeRecords")
	defer span.End()

	if len(items) > MaxNormalizeRecords {
		return match.Grouped{}, fmt.Errorf("%w: at most %d records per request", ErrInvalidInput, MaxNormalizeRecords)
	}

	inputs := make([]match.Input, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, match.InputFrom(item))
	}
	grouped := match.Group(s.normalizer.NormalizeAll(inputs, strings.TrimSpace(dateKey)))

	s.logger.DebugContext(ctx, "normalized supplied records", "date", dateKey, "records", len(items), "leagues", len(grouped.Leagues))
	return grouped, nil
}

func (s *MatchService) fetchRecords(ctx context.Context, dateKey string) ([]match.RawRecord, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: match source is not configured", ErrDependencyUnavailable)
	}
	if s.rawCache == nil {
		return s.source.FetchMatches(ctx, dateKey)
	}

	return s.rawCache.GetOrLoad(ctx, rawCacheKeyPrefix+dateKey, func(ctx context.Context) ([]match.RawRecord, error) {
		return s.source.FetchMatches(ctx, dateKey)
	})
}

// InvalidateDate drops any cached listing for dateKey.
func (s *MatchService) InvalidateDate(ctx context.Context, dateKey string) {
	if s.rawCache == nil {
		return
	}
	s.rawCache.Delete(ctx, rawCacheKeyPrefix+strings.TrimSpace(dateKey))
}

func encodeRawEcho(records []match.RawRecord, logger *logging.Logger) string {
	encoded, err := rawEchoAPI.MarshalIndent(records, "", "  ")
	if err != nil {
		logger.Error("serialize raw matches failed", "error", err)
		return fmt.Sprint(records)
	}
	return string(encoded)
}
