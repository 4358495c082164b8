package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

// Notifier delivers a text message to a user's notification target.
// Delivery is best-effort; a returned error is advisory only.
type Notifier interface {
	Notify(target string, text string) error
}

// MonitorOptions tune the refresh-and-alert loop.
type MonitorOptions struct {
	Interval      time.Duration
	Cooldown      time.Duration
	RecoverySleep time.Duration
	// ForceActive polls regardless of market hours.
	ForceActive bool
}

// Monitor is the refresh-and-alert loop: while the market is open, or
// while any holding still lacks an initial price, it fetches quotes for
// every tracked symbol, writes the price snapshot to the shared store,
// and evaluates active alerts under a per-alert cooldown. The loop only
// ever terminates on context cancellation.
type Monitor struct {
	store    domain.TxRunner
	holdings domain.HoldingRepository
	quotes   domain.QuoteProvider
	notifier Notifier
	hours    MarketHours
	opts     MonitorOptions
	logger   *zap.Logger
	now      func() time.Time
}

func NewMonitor(store domain.TxRunner, holdings domain.HoldingRepository, quotes domain.QuoteProvider, notifier Notifier, hours MarketHours, opts MonitorOptions, logger *zap.Logger) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Second
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 120 * time.Second
	}
	if opts.RecoverySleep <= 0 {
		opts.RecoverySleep = 5 * time.Second
	}
	return &Monitor{
		store:    store,
		holdings: holdings,
		quotes:   quotes,
		notifier: notifier,
		hours:    hours,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled. A failed cycle is logged and
// retried after the normal poll interval; the interval is the retry
// policy, there is no separate backoff.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		zap.Duration("interval", m.opts.Interval),
		zap.Duration("cooldown", m.opts.Cooldown),
		zap.Bool("force_active", m.opts.ForceActive),
	)

	for {
		sleep := m.opts.Interval
		if m.shouldFetch(ctx) {
			if err := m.safeCycle(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.logger.Error("refresh cycle failed", zap.Error(err))
				if errors.Is(err, errCyclePanic) {
					sleep = m.opts.RecoverySleep
				}
			}
		} else {
			m.logger.Debug("market closed, idling")
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// shouldFetch is re-evaluated every pass: market hours, or any holding
// awaiting its first price (bootstrap), force an ACTIVE cycle.
func (m *Monitor) shouldFetch(ctx context.Context) bool {
	if m.opts.ForceActive {
		return true
	}
	if m.hours.IsOpen(m.now()) {
		return true
	}
	unpriced, err := m.holdings.CountUnpriced(ctx)
	if err != nil {
		m.logger.Warn("bootstrap check failed", zap.Error(err))
		return false
	}
	return unpriced > 0
}

var errCyclePanic = errors.New("cycle panicked")

// safeCycle is the supervisory boundary: no cycle failure, panics
// included, may take the loop down.
func (m *Monitor) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errCyclePanic, r)
		}
	}()
	return m.RunCycle(ctx)
}

// RunCycle performs one fetch-update-alert pass. All price writes and
// alert trigger updates commit in a single transaction.
func (m *Monitor) RunCycle(ctx context.Context) error {
	symbols, err := m.holdings.DistinctSymbols(ctx)
	if err != nil {
		return fmt.Errorf("list symbols: %w", err)
	}
	if len(symbols) == 0 {
		return nil
	}

	quotes, err := m.quotes.FetchQuotes(ctx, symbols)
	if err != nil {
		return fmt.Errorf("fetch quotes: %w", err)
	}

	now := m.now()
	updated, notified := 0, 0
	err = m.store.InTx(ctx, func(repos domain.Repositories) error {
		for _, symbol := range symbols {
			quote, ok := quotes[symbol]
			if !ok {
				// Unresolved symbol: stale price stays until it resolves.
				continue
			}
			if err := repos.Holdings.UpdateQuote(ctx, symbol, quote.Current, quote.PreviousClose, now); err != nil {
				return fmt.Errorf("update %s: %w", symbol, err)
			}
			updated++

			sent, err := m.fireAlerts(ctx, repos.Alerts, symbol, quote.Current, now)
			if err != nil {
				return err
			}
			notified += sent
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("refresh cycle complete", zap.Int("symbols", updated), zap.Int("notifications", notified))
	return nil
}

func (m *Monitor) fireAlerts(ctx context.Context, alerts domain.AlertRepository, symbol string, price decimal.Decimal, now time.Time) (int, error) {
	armed, err := alerts.ListArmed(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("list alerts for %s: %w", symbol, err)
	}

	sent := 0
	for _, alert := range armed {
		if !alert.Condition.Met(price, alert.TargetPrice) {
			continue
		}
		if !alert.CooldownElapsed(now, m.opts.Cooldown) {
			continue
		}

		// An attempted send counts as triggered: the cooldown clock
		// starts even when delivery fails.
		if err := m.notifier.Notify(alert.NotificationTarget, alertMessage(alert.Symbol, price, alert.TargetPrice)); err != nil {
			m.logger.Warn("notification failed", zap.Uint("alert_id", alert.ID), zap.Error(err))
		}
		if err := alerts.MarkTriggered(ctx, alert.ID, now); err != nil {
			return sent, fmt.Errorf("mark alert %d triggered: %w", alert.ID, err)
		}
		sent++
	}
	return sent, nil
}

func alertMessage(symbol string, price, target decimal.Decimal) string {
	return fmt.Sprintf(
		"Narayan... Narayan... 🙏\n\nPrabhu, %s is moving!\n✨ Price: ₹%s (Target: %s)\n\nJay Ho! 🕉️",
		symbol, price.StringFixed(2), target.StringFixed(2),
	)
}
