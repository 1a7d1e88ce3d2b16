package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-center/internal/domain/match"
	"github.com/riskibarqy/match-center/internal/usecase"
)

const maxNormalizeBodyBytes = 1 << 20

type getMatchesRequest struct {
	Date string `validate:"max=32,printascii"`
	Raw  bool
}

type normalizeMatchesRequest struct {
	Date    string `json:"date" validate:"max=32,printascii"`
	Records []any  `json:"records" validate:"required,max=500"`
}

func (h *Handler) GetMatchesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesByDate")
	defer span.End()

	query := r.URL.Query()
	req := getMatchesRequest{Date: strings.TrimSpace(query.Get("date"))}
	if raw := strings.TrimSpace(query.Get("raw")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: raw must be a boolean", usecase.ErrInvalidInput))
			return
		}
		req.Raw = parsed
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	center, err := h.matchService.GetMatchesForDate(ctx, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "get matches by date failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchCenterToDTO(center, req.Raw))
}

func (h *Handler) NormalizeMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NormalizeMatches")
	defer span.End()

	var req normalizeMatchesRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxNormalizeBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err))
		return
	}
	req.Date = strings.TrimSpace(req.Date)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grouped, err := h.matchService.NormalizeRecords(ctx, req.Date, req.Records)
	if err != nil {
		h.logger.WarnContext(ctx, "normalize matches failed", "records", len(req.Records), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, normalizedMatchesDTO{
		Date:         req.Date,
		TotalMatches: grouped.Len(),
		Leagues:      leaguesToDTO(grouped),
	})
}

type matchCenterDTO struct {
	Date           string             `json:"date"`
	GeneratedAt    string             `json:"generatedAt"`
	Error          string             `json:"error,omitempty"`
	TotalMatches   int                `json:"totalMatches"`
	Leagues        []leagueMatchesDTO `json:"leagues"`
	RawMatchesJSON string             `json:"rawMatchesJson,omitempty"`
}

type normalizedMatchesDTO struct {
	Date         string             `json:"date"`
	TotalMatches int                `json:"totalMatches"`
	Leagues      []leagueMatchesDTO `json:"leagues"`
}

type leagueMatchesDTO struct {
	Name    string     `json:"name"`
	Matches []matchDTO `json:"matches"`
}

type matchDTO struct {
	LeagueName    string `json:"leagueName"`
	IsLive        bool   `json:"isLive"`
	Status        string `json:"status"`
	KickoffTime   string `json:"kickoffTime"`
	HomeName      string `json:"homeName"`
	HomeScore     string `json:"homeScore"`
	HomeLogoURL   string `json:"homeLogoUrl"`
	AwayName      string `json:"awayName"`
	AwayScore     string `json:"awayScore"`
	AwayLogoURL   string `json:"awayLogoUrl"`
	Minute        string `json:"minute"`
	Period        string `json:"period"`
	Venue         string `json:"venue"`
	Channel       string `json:"channel"`
	StatusDisplay string `json:"statusDisplay"`
	StatusClass   string `json:"statusClass"`
	ScoreClass    string `json:"scoreClass"`
}

func matchCenterToDTO(center usecase.MatchCenter, includeRaw bool) matchCenterDTO {
	out := matchCenterDTO{
		Date:         center.Date,
		GeneratedAt:  center.GeneratedAt.UTC().Format(time.RFC3339),
		Error:        center.Error,
		TotalMatches: center.Leagues.Len(),
		Leagues:      leaguesToDTO(center.Leagues),
	}
	if includeRaw {
		out.RawMatchesJSON = center.RawMatchesJSON
	}
	return out
}

func leaguesToDTO(grouped match.Grouped) []leagueMatchesDTO {
	out := make([]leagueMatchesDTO, 0, len(grouped.Leagues))
	for _, league := range grouped.Leagues {
		items := grouped.Matches(league)
		matches := make([]matchDTO, 0, len(items))
		for _, m := range items {
			matches = append(matches, matchToDTO(m))
		}
		out = append(out, leagueMatchesDTO{Name: league, Matches: matches})
	}
	return out
}

func matchToDTO(m match.NormalizedMatch) matchDTO {
	return matchDTO{
		LeagueName:    m.LeagueName,
		IsLive:        m.IsLive,
		Status:        m.Status,
		KickoffTime:   m.KickoffTime,
		HomeName:      m.HomeName,
		HomeScore:     m.HomeScore,
		HomeLogoURL:   m.HomeLogoURL,
		AwayName:      m.AwayName,
		AwayScore:     m.AwayScore,
		AwayLogoURL:   m.AwayLogoURL,
		Minute:        m.Minute,
		Period:        m.Period,
		Venue:         m.Venue,
		Channel:       m.Channel,
		StatusDisplay: string(m.StatusDisplay),
		StatusClass:   m.StatusClass,
		ScoreClass:    m.ScoreClass,
	}
}
