// Package gsheets fetches match rows from a Google-Sheets-style values
// API. The first spreadsheet row is treated as column headers; remaining
// rows become header-keyed records with loosely typed cells.
package gsheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clubstats/matchboard/internal/domain/sheet"
	"github.com/clubstats/matchboard/internal/platform/logging"
	"github.com/clubstats/matchboard/internal/platform/resilience"
	"github.com/clubstats/matchboard/internal/usecase"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

var apiKeyParamRegex = regexp.MustCompile(`key=[^&\s"']+`)
var errSheetsTransient = crerr.New("sheets transient failure")

// isoDateRegex and slashDateRegex recognize date-like cells, which stay
// strings instead of being parsed as numbers.
var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
var slashDateRegex = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	SpreadsheetID  string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	spreadsheetID  string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
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
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		spreadsheetID:  strings.TrimSpace(cfg.SpreadsheetID),
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type valuesEnvelope struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// FetchRows retrieves the selected range and maps it to header-keyed rows.
func (c *Client) FetchRows(ctx context.Context, rangeSelector string) ([]sheet.Row, error) {
	if c.spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if strings.TrimSpace(rangeSelector) == "" {
		return nil, fmt.Errorf("range selector is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sheets circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: spreadsheet source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	if c.apiKey != "" {
		values.Set("key", c.apiKey)
	}

	fullURL := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL,
		url.PathEscape(c.spreadsheetID),
		url.PathEscape(rangeSelector),
	)
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err := c.flight.Do(rangeSelector, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSheetsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope valuesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode sheet payload: %w", err)
	}

	return mapRows(envelope.Values), nil
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
			lastErr = fmt.Errorf("%w: send request: %s", errSheetsTransient, redactAPIKey(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSheetsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: sheets status=%d", errSheetsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("sheets status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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

	if lastErr == nil {
		lastErr = fmt.Errorf("sheets request failed")
	}
	c.logger.WarnContext(ctx, "sheets request failed", "url", redactAPIKey(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func redactAPIKey(value string) string {
	return apiKeyParamRegex.ReplaceAllString(value, "key=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

// mapRows applies the header row to the remaining rows. Short rows are
// padded by omission: absent cells simply have no key.
func mapRows(values [][]any) []sheet.Row {
	if len(values) < 2 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	out := make([]sheet.Row, 0, len(values)-1)
	for _, rowCells := range values[1:] {
		row := make(sheet.Row, len(headers))
		empty := true
		for i, cell := range rowCells {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			value := parseCell(cell)
			if value == nil {
				continue
			}
			row[headers[i]] = value
			empty = false
		}
		if !empty {
			out = append(out, row)
		}
	}

	return out
}

// parseCell converts a raw cell to the loose typing contract: numeric
// strings become float64 unless they look like dates, which stay strings.
func parseCell(cell any) any {
	switch v := cell.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if isoDateRegex.MatchString(trimmed) || slashDateRegex.MatchString(trimmed) {
			return trimmed
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return parsed
		}
		return trimmed
	case float64:
		return v
	case bool:
		return v
	case nil:
		return nil
	default:
		return fmt.Sprint(v)
	}
}
