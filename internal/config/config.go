package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openfairway/one-and-done/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	DBURL                       string
	DBDisablePreparedBinary     bool
	DBStatementTimeout          time.Duration
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	SheetsDir                   string
	AutoLockSweepInterval       time.Duration
	AutoLockSweepWorkers        int
	RoundsBaseURL               string
	RoundsIntrospectPath        string
	RoundsTimeout               time.Duration
	DataGolfEnabled             bool
	DataGolfBaseURL             string
	DataGolfKey                 string
	DataGolfTour                string
	DataGolfTimeout             time.Duration
	DataGolfMaxRetries          int
	DataGolfCircuitEnabled      bool
	DataGolfCircuitFailureCount int
	DataGolfCircuitOpenTimeout  time.Duration
	DataGolfCircuitHalfOpenMax  int
	UptraceEnabled              bool
	UptraceDSN                  string
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	InternalJobToken            string
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	sweepInterval, err := time.ParseDuration(getEnv("AUTOLOCK_SWEEP_INTERVAL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTOLOCK_SWEEP_INTERVAL: %w", err)
	}
	if sweepInterval <= 0 {
		return Config{}, fmt.Errorf("AUTOLOCK_SWEEP_INTERVAL must be > 0")
	}
	sweepWorkers, err := getEnvAsInt("AUTOLOCK_SWEEP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTOLOCK_SWEEP_WORKERS: %w", err)
	}
	if sweepWorkers < 1 {
		return Config{}, fmt.Errorf("AUTOLOCK_SWEEP_WORKERS must be >= 1")
	}

	dataGolfEnabled, err := strconv.ParseBool(getEnv("DATAGOLF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_ENABLED: %w", err)
	}
	dataGolfTimeout, err := time.ParseDuration(getEnv("DATAGOLF_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_TIMEOUT: %w", err)
	}
	if dataGolfTimeout <= 0 {
		return Config{}, fmt.Errorf("DATAGOLF_TIMEOUT must be > 0")
	}
	dataGolfMaxRetries, err := getEnvAsInt("DATAGOLF_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_MAX_RETRIES: %w", err)
	}
	if dataGolfMaxRetries < 0 {
		return Config{}, fmt.Errorf("DATAGOLF_MAX_RETRIES must be >= 0")
	}
	dataGolfCircuitEnabled, err := strconv.ParseBool(getEnv("DATAGOLF_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_CIRCUIT_ENABLED: %w", err)
	}
	dataGolfCircuitFailureCount, err := getEnvAsInt("DATAGOLF_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if dataGolfCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("DATAGOLF_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	dataGolfCircuitOpenTimeout, err := time.ParseDuration(getEnv("DATAGOLF_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if dataGolfCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("DATAGOLF_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	dataGolfCircuitHalfOpenMax, err := getEnvAsInt("DATAGOLF_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATAGOLF_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if dataGolfCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("DATAGOLF_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	dataGolfKey := strings.TrimSpace(getEnv("DATAGOLF_KEY", ""))
	if dataGolfEnabled && dataGolfKey == "" {
		return Config{}, fmt.Errorf("DATAGOLF_KEY is required when DATAGOLF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 getEnv("APP_SERVICE_NAME", "one-and-done-api"),
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                       getEnv("DB_URL", ""),
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   pprofAddr,
		SheetsDir:                   getEnv("SHEETS_DIR", "data"),
		AutoLockSweepInterval:       sweepInterval,
		AutoLockSweepWorkers:        sweepWorkers,
		RoundsBaseURL:               getEnv("ROUNDS_BASE_URL", "http://localhost:8081"),
		RoundsIntrospectPath:        getEnv("ROUNDS_INTROSPECT_PATH", "/v1/auth/introspect"),
		DataGolfEnabled:             dataGolfEnabled,
		DataGolfBaseURL:             strings.TrimSpace(getEnv("DATAGOLF_BASE_URL", "https://feeds.datagolf.com")),
		DataGolfKey:                 dataGolfKey,
		DataGolfTour:                strings.TrimSpace(getEnv("DATAGOLF_TOUR", "pga")),
		DataGolfTimeout:             dataGolfTimeout,
		DataGolfMaxRetries:          dataGolfMaxRetries,
		DataGolfCircuitEnabled:      dataGolfCircuitEnabled,
		DataGolfCircuitFailureCount: dataGolfCircuitFailureCount,
		DataGolfCircuitOpenTimeout:  dataGolfCircuitOpenTimeout,
		DataGolfCircuitHalfOpenMax:  dataGolfCircuitHalfOpenMax,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAuthToken:          strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:      strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	dbStatementTimeout, err := time.ParseDuration(getEnv("DB_STATEMENT_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_STATEMENT_TIMEOUT: %w", err)
	}
	if dbStatementTimeout < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_TIMEOUT cannot be negative")
	}
	cfg.DBStatementTimeout = dbStatementTimeout

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	roundsTimeout, err := time.ParseDuration(getEnv("ROUNDS_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ROUNDS_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.RoundsTimeout = roundsTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

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
