package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/match-center/internal/platform/logging"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	MatchCenterBaseURL               string
	MatchCenterTimeout               time.Duration
	MatchCenterFetchMode             string
	MatchCenterUserAgent             string
	MatchCenterMaxBodyBytes          int
	MatchCenterBrowserWaitSelector   string
	MatchCenterCircuitEnabled        bool
	MatchCenterCircuitFailureCount   int
	MatchCenterCircuitOpenTimeout    time.Duration
	MatchCenterCircuitHalfOpenMaxReq int
	MatchCenterRateLimitRPS          float64
	MatchCenterRateLimitBurst        int
	MatchCenterTimezone              *time.Location
	MatchFinishedAfter               time.Duration

	CacheEnabled bool
	CacheTTL     time.Duration

	UptraceEnabled         bool
	UptraceDSN             string
	UptraceLogsEnabled     bool
	PprofEnabled           bool
	PprofAddr              string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables that are already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	fetchMode := strings.ToLower(strings.TrimSpace(getEnv("MATCHCENTER_FETCH_MODE", FetchModeHTTP)))
	if fetchMode != FetchModeHTTP && fetchMode != FetchModeBrowser {
		return Config{}, fmt.Errorf("invalid MATCHCENTER_FETCH_MODE %q: valid values are %s, %s", fetchMode, FetchModeHTTP, FetchModeBrowser)
	}
	matchCenterTimeout, err := getEnvAsPositiveDuration("MATCHCENTER_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	maxBodyBytes, err := getEnvAsInt("MATCHCENTER_MAX_BODY_BYTES", 8<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_MAX_BODY_BYTES: %w", err)
	}
	if maxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MATCHCENTER_MAX_BODY_BYTES must be > 0")
	}
	baseURL := strings.TrimSpace(getEnv("MATCHCENTER_BASE_URL", "https://www.yallakora.com/match-center"))
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return Config{}, fmt.Errorf("MATCHCENTER_BASE_URL must be an http(s) url, got %q", baseURL)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("MATCHCENTER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("MATCHCENTER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("MATCHCENTER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := getEnvAsPositiveDuration("MATCHCENTER_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("MATCHCENTER_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("MATCHCENTER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	rateLimitRPS, err := strconv.ParseFloat(strings.TrimSpace(getEnv("MATCHCENTER_RATE_LIMIT_RPS", "2")), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_RATE_LIMIT_RPS: %w", err)
	}
	if rateLimitRPS < 0 {
		return Config{}, fmt.Errorf("MATCHCENTER_RATE_LIMIT_RPS must be >= 0")
	}
	rateLimitBurst, err := getEnvAsInt("MATCHCENTER_RATE_LIMIT_BURST", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCHCENTER_RATE_LIMIT_BURST: %w", err)
	}
	if rateLimitBurst < 1 {
		return Config{}, fmt.Errorf("MATCHCENTER_RATE_LIMIT_BURST must be >= 1")
	}

	timezone, err := parseLocation(getEnv("MATCHCENTER_TIMEZONE", "Local"))
	if err != nil {
		return Config{}, err
	}
	finishedAfter, err := getEnvAsPositiveDuration("MATCH_FINISHED_AFTER", "90m")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsPositiveDuration("CACHE_TTL", "30s")
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                           appEnv,
		ServiceName:                      getEnv("APP_SERVICE_NAME", "match-center"),
		ServiceVersion:                   getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                         getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                      readTimeout,
		WriteTimeout:                     writeTimeout,
		CORSAllowedOrigins:               splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                         logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		MatchCenterBaseURL:               baseURL,
		MatchCenterTimeout:               matchCenterTimeout,
		MatchCenterFetchMode:             fetchMode,
		MatchCenterUserAgent:             getEnv("MATCHCENTER_USER_AGENT", defaultUserAgent),
		MatchCenterMaxBodyBytes:          maxBodyBytes,
		MatchCenterBrowserWaitSelector:   getEnv("MATCHCENTER_BROWSER_WAIT_SELECTOR", "body"),
		MatchCenterCircuitEnabled:        circuitEnabled,
		MatchCenterCircuitFailureCount:   circuitFailureCount,
		MatchCenterCircuitOpenTimeout:    circuitOpenTimeout,
		MatchCenterCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		MatchCenterRateLimitRPS:          rateLimitRPS,
		MatchCenterRateLimitBurst:        rateLimitBurst,
		MatchCenterTimezone:              timezone,
		MatchFinishedAfter:               finishedAfter,
		CacheEnabled:                     cacheEnabled,
		CacheTTL:                         cacheTTL,
		UptraceEnabled:                   uptraceEnabled,
		UptraceDSN:                       uptraceDSN,
		UptraceLogsEnabled:               uptraceLogsEnabled,
		PprofEnabled:                     pprofEnabled,
		PprofAddr:                        pprofAddr,
		PyroscopeEnabled:                 pyroscopeEnabled,
		PyroscopeServerAddress:           pyroscopeServerAddress,
		PyroscopeAuthToken:               strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:              pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func parseLocation(raw string) (*time.Location, error) {
	name := strings.TrimSpace(raw)
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("parse MATCHCENTER_TIMEZONE: %w", err)
	}
	return loc, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
