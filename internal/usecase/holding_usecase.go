package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

type HoldingUsecase struct {
	users    domain.UserRepository
	holdings domain.HoldingRepository
	catalog  *CatalogUsecase
}

func NewHoldingUsecase(users domain.UserRepository, holdings domain.HoldingRepository, catalog *CatalogUsecase) *HoldingUsecase {
	return &HoldingUsecase{users: users, holdings: holdings, catalog: catalog}
}

// AddHolding records a position. Prices stay zero until the monitor's
// first successful refresh picks the symbol up.
func (u *HoldingUsecase) AddHolding(ctx context.Context, chatID int64, symbol string, quantity, buyPrice decimal.Decimal) (*domain.Holding, error) {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return nil, err
	}

	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if buyPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	normalized := NormalizeSymbol(symbol)
	if u.catalog != nil && strings.HasSuffix(normalized, ".NS") && u.catalog.Loaded() && !u.catalog.Known(normalized) {
		return nil, ErrSymbolUnknown
	}

	holding := &domain.Holding{
		OwnerID:  user.ID,
		Symbol:   normalized,
		Quantity: quantity,
		BuyPrice: buyPrice,
	}
	if err := u.holdings.Create(ctx, holding); err != nil {
		return nil, err
	}
	return holding, nil
}

func (u *HoldingUsecase) ListHoldings(ctx context.Context, chatID int64) ([]domain.Holding, error) {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return nil, err
	}
	return u.holdings.ListByOwner(ctx, user.ID)
}

func (u *HoldingUsecase) RemoveHolding(ctx context.Context, chatID int64, holdingID uint) error {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return err
	}
	if err := u.holdings.Delete(ctx, user.ID, holdingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrHoldingNotFound
		}
		return err
	}
	return nil
}

// NormalizeSymbol uppercases and exchange-qualifies a ticker; bare
// symbols default to the NSE suffix.
func NormalizeSymbol(symbol string) string {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if normalized == "" {
		return normalized
	}
	if !strings.HasSuffix(normalized, ".NS") && !strings.HasSuffix(normalized, ".BO") {
		normalized += ".NS"
	}
	return normalized
}
