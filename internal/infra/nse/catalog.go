package nse

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

// aliasNames overrides legal company names with what people actually
// search for.
var aliasNames = map[string]string{
	"PAYTM":      "Paytm (One 97)",
	"NYKAA":      "Nykaa (FSN E-Commerce)",
	"POLICYBZR":  "PolicyBazaar (PB Fintech)",
	"NAUKRI":     "Naukri (Info Edge)",
	"M&M":        "Mahindra & Mahindra",
	"HINDUNILVR": "HUL (Hindustan Unilever)",
	"NESTLEIND":  "Nestle India (Maggi)",
	"EICHERMOT":  "Eicher Motors (Royal Enfield)",
	"JUBLFOOD":   "Jubilant (Domino's Pizza)",
	"DEVYANI":    "Devyani (KFC/Pizza Hut)",
	"PAGEIND":    "Page Industries (Jockey)",
	"TRENT":      "Trent (Westside/Zudio)",
	"DMART":      "DMart (Avenue Supermarts)",
	"VBL":        "Varun Beverages (Pepsi)",
	"IRCTC":      "IRCTC (Indian Railways)",
	"HAL":        "HAL (Hindustan Aeronautics)",
}

// Client downloads the exchange's equity master list (CSV).
type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchListings downloads and parses the equity list, keeping EQ and BE
// series rows and qualifying each symbol for the NSE exchange suffix.
func (c *Client) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("equity list download failed", zap.Error(err))
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("equity list download: status %d", response.StatusCode)
	}

	reader := csv.NewReader(response.Body)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse equity list: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("equity list empty")
	}

	header := records[0]
	symbolIdx, nameIdx, seriesIdx := columnIndexes(header)
	if symbolIdx < 0 || nameIdx < 0 || seriesIdx < 0 {
		return nil, fmt.Errorf("equity list missing expected columns: %v", header)
	}

	listings := make([]domain.Listing, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= seriesIdx {
			continue
		}
		series := strings.TrimSpace(record[seriesIdx])
		if series != "EQ" && series != "BE" {
			continue
		}
		symbol := strings.TrimSpace(record[symbolIdx])
		if symbol == "" {
			continue
		}
		listings = append(listings, domain.Listing{
			Symbol: symbol + ".NS",
			Name:   displayName(symbol, record[nameIdx]),
		})
	}

	c.logger.Info("equity list loaded", zap.Int("listings", len(listings)), zap.Duration("duration", time.Since(start)))
	return listings, nil
}

func columnIndexes(header []string) (symbol, name, series int) {
	symbol, name, series = -1, -1, -1
	for i, column := range header {
		switch strings.TrimSpace(strings.ToUpper(column)) {
		case "SYMBOL":
			symbol = i
		case "NAME OF COMPANY":
			name = i
		case "SERIES":
			series = i
		}
	}
	return symbol, name, series
}

func displayName(symbol, legalName string) string {
	if alias, ok := aliasNames[symbol]; ok {
		return alias
	}
	name := strings.TrimSpace(legalName)
	name = strings.ReplaceAll(name, " Limited", "")
	name = strings.ReplaceAll(name, " Ltd", "")
	return name
}

var _ domain.ListingSource = (*Client)(nil)
