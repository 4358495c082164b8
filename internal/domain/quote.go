package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrProviderUnavailable marks a whole-batch quote fetch failure. The
// monitor skips the cycle's update step and retries on the next pass.
var ErrProviderUnavailable = errors.New("quote provider unavailable")

// Quote is a best-effort snapshot for one symbol. PreviousClose equals
// Current when the provider has only one daily close on record.
type Quote struct {
	Current       decimal.Decimal
	PreviousClose decimal.Decimal
}

// QuoteProvider returns quotes for every symbol it could resolve;
// unresolved symbols are simply absent from the result. A nil-map error
// return means the provider itself was unreachable.
type QuoteProvider interface {
	FetchQuotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// Listing is one entry of the exchange symbol catalog.
type Listing struct {
	Symbol string
	Name   string
}

// ListingSource downloads the exchange's full equity list.
type ListingSource interface {
	FetchListings(ctx context.Context) ([]Listing, error)
}
