package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Condition is the direction of a price alert.
type Condition string

const (
	ConditionAbove Condition = "ABOVE"
	ConditionBelow Condition = "BELOW"
)

var ErrInvalidCondition = errors.New("invalid alert condition")

// ParseCondition normalizes the two persisted condition tokens.
func ParseCondition(input string) (Condition, error) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case string(ConditionAbove):
		return ConditionAbove, nil
	case string(ConditionBelow):
		return ConditionBelow, nil
	default:
		return "", ErrInvalidCondition
	}
}

// Met reports whether price satisfies the condition against target.
// ABOVE fires at price >= target, BELOW at price <= target.
func (c Condition) Met(price, target decimal.Decimal) bool {
	cmp := price.Cmp(target)
	switch c {
	case ConditionAbove:
		return cmp >= 0
	case ConditionBelow:
		return cmp <= 0
	default:
		return false
	}
}

// DeriveCondition picks the direction that fires on the price moving
// toward the target from its current side: BELOW when the current price
// already exceeds the target, ABOVE otherwise.
func DeriveCondition(current, target decimal.Decimal) Condition {
	if current.GreaterThan(target) {
		return ConditionBelow
	}
	return ConditionAbove
}

// Alert is a user-defined price threshold. LastTriggered is written only
// by the monitor and drives the notification cooldown.
type Alert struct {
	ID            uint
	OwnerID       uint
	Symbol        string
	TargetPrice   decimal.Decimal
	Condition     Condition
	IsActive      bool
	LastTriggered *time.Time
	CreatedAt     time.Time
}

// CooldownElapsed reports whether the alert may notify again at now.
func (a *Alert) CooldownElapsed(now time.Time, cooldown time.Duration) bool {
	if a.LastTriggered == nil {
		return true
	}
	return now.Sub(*a.LastTriggered) >= cooldown
}

// ArmedAlert is an active alert joined with its owner's notification
// target, as consumed by the monitor.
type ArmedAlert struct {
	Alert
	NotificationTarget string
}
