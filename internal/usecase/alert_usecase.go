package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

// ConditionAuto asks CreateAlert to derive the direction from the
// symbol's current price instead of taking it from the user.
const ConditionAuto = "AUTO"

type AlertUsecase struct {
	users   domain.UserRepository
	alerts  domain.AlertRepository
	lookup  *PriceLookup
	pricing domain.HoldingRepository
}

func NewAlertUsecase(users domain.UserRepository, alerts domain.AlertRepository, holdings domain.HoldingRepository, lookup *PriceLookup) *AlertUsecase {
	return &AlertUsecase{users: users, alerts: alerts, pricing: holdings, lookup: lookup}
}

// CreateAlert registers a price threshold for chatID's account. The
// condition may be ABOVE, BELOW, or AUTO; AUTO resolves against the
// best price on hand, preferring the owner's refreshed holding over a
// live lookup, and falling back to the target itself when neither is
// available.
func (u *AlertUsecase) CreateAlert(ctx context.Context, chatID int64, symbol, condition string, target decimal.Decimal) (*domain.Alert, error) {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return nil, err
	}

	if !target.IsPositive() {
		return nil, ErrInvalidTarget
	}

	normalized := NormalizeSymbol(symbol)

	direction, err := u.resolveCondition(ctx, user.ID, normalized, condition, target)
	if err != nil {
		return nil, err
	}

	alert := &domain.Alert{
		OwnerID:     user.ID,
		Symbol:      normalized,
		TargetPrice: target,
		Condition:   direction,
		IsActive:    true,
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (u *AlertUsecase) resolveCondition(ctx context.Context, ownerID uint, symbol, condition string, target decimal.Decimal) (domain.Condition, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(condition))
	if trimmed != "" && trimmed != ConditionAuto {
		return domain.ParseCondition(trimmed)
	}
	return domain.DeriveCondition(u.referencePrice(ctx, ownerID, symbol, target), target), nil
}

// referencePrice picks the current price AUTO derivation compares the
// target against. An owned holding the monitor has already priced wins;
// otherwise a live lookup is attempted, and as a last resort the target
// itself is used, which yields an ABOVE alert.
func (u *AlertUsecase) referencePrice(ctx context.Context, ownerID uint, symbol string, target decimal.Decimal) decimal.Decimal {
	if holdings, err := u.pricing.ListByOwner(ctx, ownerID); err == nil {
		for i := range holdings {
			if holdings[i].Symbol == symbol && holdings[i].CurrentPrice.IsPositive() {
				return holdings[i].CurrentPrice
			}
		}
	}
	if u.lookup != nil {
		if price, err := u.lookup.Lookup(ctx, symbol); err == nil && price.IsPositive() {
			return price
		}
	}
	return target
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, chatID int64) ([]domain.Alert, error) {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return nil, err
	}
	return u.alerts.ListByOwner(ctx, user.ID)
}

func (u *AlertUsecase) DeleteAlert(ctx context.Context, chatID int64, alertID uint) error {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return err
	}
	if err := u.alerts.Delete(ctx, user.ID, alertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}

// SetAlertActive pauses or resumes a single alert. Cooldown state is
// untouched, so resuming never replays a notification early.
func (u *AlertUsecase) SetAlertActive(ctx context.Context, chatID int64, alertID uint, active bool) error {
	user, err := lookupUser(ctx, u.users, chatID)
	if err != nil {
		return err
	}
	if err := u.alerts.SetActive(ctx, user.ID, alertID, active); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAlertNotFound
		}
		return err
	}
	return nil
}
