package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

const (
	sparkPath = "/v8/finance/spark"
	// Yahoo rejects requests without a browser-looking agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client fetches daily close series for a batch of symbols. The last
// close is the current price, the second-last the previous close.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchQuotes resolves quotes for as many of the symbols as the provider
// knows; unresolved symbols are absent from the result. Any batch-level
// failure wraps domain.ErrProviderUnavailable.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	if len(symbols) == 0 {
		return map[string]domain.Quote{}, nil
	}

	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("range", "5d")
	query.Set("interval", "1d")
	endpoint := c.baseURL + sparkPath + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("spark request failed", zap.Int("symbols", len(symbols)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer response.Body.Close()

	c.logger.Debug(
		"spark request complete",
		zap.Int("symbols", len(symbols)),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderUnavailable, err)
	}

	quotes, err := decodeQuotes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	return quotes, nil
}

func decodeQuotes(data []byte) (map[string]domain.Quote, error) {
	var envelope sparkEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Spark.Result) > 0 {
		quotes := make(map[string]domain.Quote, len(envelope.Spark.Result))
		for _, result := range envelope.Spark.Result {
			var closes []*float64
			if len(result.Response) > 0 && len(result.Response[0].Indicators.Quote) > 0 {
				closes = result.Response[0].Indicators.Quote[0].Close
			}
			if quote, ok := quoteFromCloses(closes); ok {
				quotes[result.Symbol] = quote
			}
		}
		return quotes, nil
	}

	var flat map[string]sparkSeries
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("decode spark response: %w", err)
	}
	quotes := make(map[string]domain.Quote, len(flat))
	for symbol, series := range flat {
		if quote, ok := quoteFromCloses(series.Close); ok {
			quotes[symbol] = quote
		}
	}
	return quotes, nil
}

// quoteFromCloses reduces a daily close series to current and previous
// close. A symbol with a single available close yields previous=current,
// so its daily change reads as zero rather than going missing.
func quoteFromCloses(closes []*float64) (domain.Quote, bool) {
	values := make([]float64, 0, len(closes))
	for _, close := range closes {
		if close != nil {
			values = append(values, *close)
		}
	}
	if len(values) == 0 {
		return domain.Quote{}, false
	}

	current := decimal.NewFromFloat(values[len(values)-1])
	previous := current
	if len(values) >= 2 {
		previous = decimal.NewFromFloat(values[len(values)-2])
	}
	return domain.Quote{Current: current, PreviousClose: previous}, true
}

var _ domain.QuoteProvider = (*Client)(nil)
