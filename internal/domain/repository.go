package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	GetByNotificationTarget(ctx context.Context, target string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, userID uint) (*User, error)
	Create(ctx context.Context, user *User) error
	SetNotificationTarget(ctx context.Context, userID uint, target string) error
}

type HoldingRepository interface {
	Create(ctx context.Context, holding *Holding) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Holding, error)
	Delete(ctx context.Context, ownerID, holdingID uint) error
	// DistinctSymbols enumerates symbols across all holdings, cross-user.
	DistinctSymbols(ctx context.Context) ([]string, error)
	// CountUnpriced counts holdings still awaiting their first refresh.
	CountUnpriced(ctx context.Context) (int64, error)
	// UpdateQuote writes the price snapshot to every holding row with the
	// symbol, regardless of owner.
	UpdateQuote(ctx context.Context, symbol string, current, previousClose decimal.Decimal, at time.Time) error
}

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Alert, error)
	Delete(ctx context.Context, ownerID, alertID uint) error
	SetActive(ctx context.Context, ownerID, alertID uint, active bool) error
	// ListArmed returns active alerts on the symbol whose owner has a
	// notification target configured.
	ListArmed(ctx context.Context, symbol string) ([]ArmedAlert, error)
	MarkTriggered(ctx context.Context, alertID uint, at time.Time) error
}

// Repositories bundles the store's repositories bound to one connection
// or transaction.
type Repositories struct {
	Users    UserRepository
	Holdings HoldingRepository
	Alerts   AlertRepository
}

// TxRunner executes fn inside a single write transaction, so a refresh
// cycle's price writes and alert trigger updates commit atomically.
type TxRunner interface {
	InTx(ctx context.Context, fn func(Repositories) error) error
}
