package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/cache"
)

// PriceLookup answers one-off price questions outside the monitor's
// batch refresh, caching results so chatty commands do not hammer the
// provider.
type PriceLookup struct {
	quotes domain.QuoteProvider
	prices *cache.TTL[decimal.Decimal]
}

func NewPriceLookup(quotes domain.QuoteProvider, prices *cache.TTL[decimal.Decimal]) *PriceLookup {
	return &PriceLookup{quotes: quotes, prices: prices}
}

// Lookup returns the live price for symbol, or zero with an error when
// the provider has nothing for it.
func (p *PriceLookup) Lookup(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return p.prices.GetOrCompute(symbol, func() (decimal.Decimal, error) {
		quotes, err := p.quotes.FetchQuotes(ctx, []string{symbol})
		if err != nil {
			return decimal.Zero, err
		}
		quote, ok := quotes[symbol]
		if !ok {
			return decimal.Zero, domain.ErrNotFound
		}
		return quote.Current, nil
	})
}
