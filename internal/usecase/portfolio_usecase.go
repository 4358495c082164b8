package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PortfolioRow is one holding's contribution to the report.
type PortfolioRow struct {
	HoldingID uint
	Symbol    string
	Quantity  decimal.Decimal
	BuyPrice  decimal.Decimal
	LivePrice decimal.Decimal
	Value     decimal.Decimal
	PnL       decimal.Decimal
	PnLPct    decimal.Decimal
}

// PortfolioReport aggregates a user's holdings at the latest prices.
type PortfolioReport struct {
	Rows         []PortfolioRow
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	TotalPnL     decimal.Decimal
	DailyPnL     decimal.Decimal
}

// AggregatePortfolio is a pure computation over holdings. Holdings not
// yet priced fall back to their cost basis on both sides, contributing
// zero P&L and zero daily P&L instead of a misleading loss.
func AggregatePortfolio(holdings []domain.Holding) PortfolioReport {
	report := PortfolioReport{Rows: make([]PortfolioRow, 0, len(holdings))}

	for _, holding := range holdings {
		live := holding.LivePrice()
		prev := holding.PrevClose()

		value := live.Mul(holding.Quantity)
		cost := holding.BuyPrice.Mul(holding.Quantity)
		pnl := value.Sub(cost)

		pnlPct := decimal.Zero
		if cost.IsPositive() {
			pnlPct = pnl.Div(cost).Mul(hundred)
		}

		report.Invested = report.Invested.Add(cost)
		report.CurrentValue = report.CurrentValue.Add(value)
		report.DailyPnL = report.DailyPnL.Add(live.Sub(prev).Mul(holding.Quantity))

		report.Rows = append(report.Rows, PortfolioRow{
			HoldingID: holding.ID,
			Symbol:    holding.Symbol,
			Quantity:  holding.Quantity,
			BuyPrice:  holding.BuyPrice,
			LivePrice: live,
			Value:     value,
			PnL:       pnl,
			PnLPct:    pnlPct,
		})
	}

	report.TotalPnL = report.CurrentValue.Sub(report.Invested)
	return report
}

type PortfolioUsecase struct {
	users    domain.UserRepository
	holdings domain.HoldingRepository
}

func NewPortfolioUsecase(users domain.UserRepository, holdings domain.HoldingRepository) *PortfolioUsecase {
	return &PortfolioUsecase{users: users, holdings: holdings}
}

// Summary builds the portfolio report for the user behind a chat id.
// Read-only, so it is safe concurrently with the monitor's writes.
func (u *PortfolioUsecase) Summary(ctx context.Context, chatID int64) (PortfolioReport, error) {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return PortfolioReport{}, err
	}

	holdings, err := u.holdings.ListByOwner(ctx, user.ID)
	if err != nil {
		return PortfolioReport{}, err
	}

	return AggregatePortfolio(holdings), nil
}
