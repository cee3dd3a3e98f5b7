// Package datagolf pulls the current tournament field from the DataGolf
// field-updates feed.
package datagolf

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/openfairway/one-and-done/internal/platform/logging"
	"github.com/openfairway/one-and-done/internal/platform/resilience"
	"github.com/openfairway/one-and-done/internal/usecase"
)

const (
	defaultBaseURL = "https://feeds.datagolf.com"
	defaultTour    = "pga"
)

var apiKeyParamRegex = regexp.MustCompile(`key=[^&\s"']+`)
var errDataGolfTransient = crerr.New("datagolf transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Tour           string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	key            string
	tour           string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tour := strings.TrimSpace(cfg.Tour)
	if tour == "" {
		tour = defaultTour
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		key:            strings.TrimSpace(cfg.Key),
		tour:           tour,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListField returns the entry list of the current tournament.
func (c *Client) ListField(ctx context.Context) ([]usecase.FieldPlayer, error) {
	var envelope fieldUpdatesEnvelope
	if err := c.doJSON(ctx, "/field-updates", map[string]string{
		"tour":        c.tour,
		"file_format": "json",
	}, &envelope); err != nil {
		return nil, err
	}

	out := make([]usecase.FieldPlayer, 0, len(envelope.Field))
	for _, item := range envelope.Field {
		name := normalizePlayerName(item.PlayerName)
		if name == "" {
			continue
		}
		out = append(out, usecase.FieldPlayer{
			Name:    name,
			Country: strings.TrimSpace(item.Country),
			Amateur: item.Amateur == 1,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "datagolf circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: field feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("key", c.key)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	flightKey := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isDataGolfCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode field feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errDataGolfTransient, sanitizeKey(err.Error(), c.key))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errDataGolfTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errDataGolfTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "datagolf request failed", "url", redactURL(fullURL), "error", lastErr)
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: request failed", errDataGolfTransient)
	}
	return nil, lastErr
}

func isDataGolfCircuitFailure(err error) bool {
	return stderrors.Is(err, errDataGolfTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	return apiKeyParamRegex.ReplaceAllString(rawURL, "key=REDACTED")
}

func sanitizeKey(text, key string) string {
	if key == "" {
		return text
	}
	return strings.ReplaceAll(text, key, "REDACTED")
}

// normalizePlayerName flips the feed's "Last, First" into "First Last".
func normalizePlayerName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	parts := strings.SplitN(name, ",", 2)
	if len(parts) != 2 {
		return name
	}
	return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
}

type fieldUpdatesEnvelope struct {
	EventName string           `json:"event_name"`
	Field     []fieldPlayerRow `json:"field"`
}

type fieldPlayerRow struct {
	PlayerName string `json:"player_name"`
	Country    string `json:"country"`
	Amateur    int    `json:"am"`
}
