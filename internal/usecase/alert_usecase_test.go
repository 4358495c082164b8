package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

func newAlertFixture(t *testing.T) (*AlertUsecase, *fakeUsers, *fakeHoldings, *fakeAlerts) {
	t.Helper()
	users := &fakeUsers{}
	holdings := &fakeHoldings{}
	alerts := &fakeAlerts{targets: map[uint]string{}}
	uc := NewAlertUsecase(users, alerts, holdings, nil)
	return uc, users, holdings, alerts
}

func TestCreateAlertExplicitCondition(t *testing.T) {
	uc, users, _, _ := newAlertFixture(t)
	registerUser(t, users, 42, "tester")

	alert, err := uc.CreateAlert(context.Background(), 42, "reliance", "below", dec("2500"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if alert.Symbol != "RELIANCE.NS" {
		t.Fatalf("symbol = %s", alert.Symbol)
	}
	if alert.Condition != domain.ConditionBelow {
		t.Fatalf("condition = %s", alert.Condition)
	}
	if !alert.IsActive {
		t.Fatal("new alerts start active")
	}
}

func TestCreateAlertAutoDerivesFromHolding(t *testing.T) {
	uc, users, holdings, _ := newAlertFixture(t)
	user := registerUser(t, users, 42, "tester")
	holdings.holdings = []domain.Holding{
		{ID: 1, OwnerID: user.ID, Symbol: "FOO.NS", Quantity: dec("1"), BuyPrice: dec("100"), CurrentPrice: dec("120")},
	}

	// Current 120 above target 100: alert watches for the fall.
	alert, err := uc.CreateAlert(context.Background(), 42, "FOO.NS", "", dec("100"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if alert.Condition != domain.ConditionBelow {
		t.Fatalf("condition = %s, want BELOW", alert.Condition)
	}

	// Current 120 below target 150: alert watches for the rise.
	alert, err = uc.CreateAlert(context.Background(), 42, "FOO.NS", "AUTO", dec("150"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if alert.Condition != domain.ConditionAbove {
		t.Fatalf("condition = %s, want ABOVE", alert.Condition)
	}
}

func TestCreateAlertAutoWithoutPriceDefaultsAbove(t *testing.T) {
	uc, users, _, _ := newAlertFixture(t)
	registerUser(t, users, 42, "tester")

	// No holding, no lookup: target compares against itself.
	alert, err := uc.CreateAlert(context.Background(), 42, "FOO.NS", "", dec("100"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if alert.Condition != domain.ConditionAbove {
		t.Fatalf("condition = %s, want ABOVE", alert.Condition)
	}
}

func TestCreateAlertValidation(t *testing.T) {
	uc, users, _, _ := newAlertFixture(t)

	if _, err := uc.CreateAlert(context.Background(), 42, "FOO", "", dec("100")); !errors.Is(err, ErrUserNotRegistered) {
		t.Fatalf("expected ErrUserNotRegistered, got %v", err)
	}

	registerUser(t, users, 42, "tester")
	if _, err := uc.CreateAlert(context.Background(), 42, "FOO", "", dec("0")); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := uc.CreateAlert(context.Background(), 42, "FOO", "SIDEWAYS", dec("100")); !errors.Is(err, domain.ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
}

func TestAlertOwnershipChecks(t *testing.T) {
	uc, users, _, alerts := newAlertFixture(t)
	owner := registerUser(t, users, 42, "owner")
	registerUser(t, users, 43, "intruder")
	alerts.alerts = []domain.Alert{{ID: 7, OwnerID: owner.ID, Symbol: "FOO.NS", TargetPrice: dec("100"), Condition: domain.ConditionAbove, IsActive: true}}

	if err := uc.DeleteAlert(context.Background(), 43, 7); !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("cross-user delete must fail, got %v", err)
	}
	if err := uc.SetAlertActive(context.Background(), 43, 7, false); !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("cross-user pause must fail, got %v", err)
	}

	if err := uc.SetAlertActive(context.Background(), 42, 7, false); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if alerts.alerts[0].IsActive {
		t.Fatal("alert should be paused")
	}
	if err := uc.DeleteAlert(context.Background(), 42, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(alerts.alerts) != 0 {
		t.Fatal("alert should be gone")
	}
}
