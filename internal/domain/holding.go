package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a user's position in one exchange-qualified symbol
// (suffix denotes exchange, e.g. RELIANCE.NS). CurrentPrice and
// PreviousClose stay zero until the monitor's first successful refresh.
type Holding struct {
	ID            uint
	OwnerID       uint
	Symbol        string
	Quantity      decimal.Decimal
	BuyPrice      decimal.Decimal
	CurrentPrice  decimal.Decimal
	PreviousClose decimal.Decimal
	LastUpdated   time.Time
	CreatedAt     time.Time
}

// LivePrice returns the refreshed price, falling back to the cost basis
// so unpriced holdings contribute zero P&L instead of a fake loss.
func (h *Holding) LivePrice() decimal.Decimal {
	if h.CurrentPrice.IsPositive() {
		return h.CurrentPrice
	}
	return h.BuyPrice
}

// PrevClose returns the previous daily close with the same fallback.
func (h *Holding) PrevClose() decimal.Decimal {
	if h.PreviousClose.IsPositive() {
		return h.PreviousClose
	}
	return h.BuyPrice
}
