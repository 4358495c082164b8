package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

// CatalogUsecase keeps the exchange symbol list in memory for ticker
// validation and display names. Loading is best effort: when the source
// is unreachable the catalog stays empty and validation is skipped.
type CatalogUsecase struct {
	source domain.ListingSource
	logger *zap.Logger

	mu    sync.RWMutex
	names map[string]string
}

func NewCatalogUsecase(source domain.ListingSource, logger *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{source: source, logger: logger}
}

// Load fetches the listing file and replaces the in-memory index.
func (c *CatalogUsecase) Load(ctx context.Context) error {
	listings, err := c.source.FetchListings(ctx)
	if err != nil {
		c.logger.Warn("symbol catalog unavailable, ticker validation disabled", zap.Error(err))
		return err
	}

	names := make(map[string]string, len(listings))
	for _, listing := range listings {
		names[listing.Symbol] = listing.Name
	}

	c.mu.Lock()
	c.names = names
	c.mu.Unlock()

	c.logger.Info("symbol catalog loaded", zap.Int("listings", len(names)))
	return nil
}

// Loaded reports whether a catalog is in memory at all.
func (c *CatalogUsecase) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names) > 0
}

// Known reports whether symbol appears in the loaded catalog.
func (c *CatalogUsecase) Known(symbol string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.names[symbol]
	return ok
}

// Name returns the display name for symbol, falling back to the symbol
// itself when the catalog has no entry.
func (c *CatalogUsecase) Name(symbol string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if name, ok := c.names[symbol]; ok && name != "" {
		return name
	}
	return symbol
}
