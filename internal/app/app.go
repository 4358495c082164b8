package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/config"
	"github.com/imRishabh-ofc/narad-muni/internal/delivery/telegram"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/cache"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/db"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/log"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/nse"
	"github.com/imRishabh-ofc/narad-muni/internal/infra/yahoo"
	"github.com/imRishabh-ofc/narad-muni/internal/usecase"
)

type App struct {
	bot     *telegram.Bot
	monitor *usecase.Monitor
	catalog *usecase.CatalogUsecase
	logger  *zap.Logger
	store   *db.Store
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	store := db.NewStore(conn)
	repos := store.Repositories()

	quotes := yahoo.NewClient(cfg.QuoteBaseURL, cfg.QuoteTimeout, logger)
	listings := nse.NewClient(cfg.CatalogURL, cfg.CatalogTimeout, logger)
	catalog := usecase.NewCatalogUsecase(listings, logger)

	priceCache := cache.New[decimal.Decimal](cfg.PriceCacheTTL, nil)
	lookup := usecase.NewPriceLookup(quotes, priceCache)

	userUC := usecase.NewUserUsecase(repos.Users)
	holdingUC := usecase.NewHoldingUsecase(repos.Users, repos.Holdings, catalog)
	alertUC := usecase.NewAlertUsecase(repos.Users, repos.Alerts, repos.Holdings, lookup)
	portfolioUC := usecase.NewPortfolioUsecase(repos.Users, repos.Holdings)

	hours, err := usecase.NewMarketHours(cfg.MarketOpen, cfg.MarketClose, cfg.MarketOffset)
	if err != nil {
		return nil, err
	}

	api, err := telegram.NewAPI(cfg.TelegramBotToken, cfg.NotifyTimeout)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	monitor := usecase.NewMonitor(store, repos.Holdings, quotes, notifier, hours, usecase.MonitorOptions{
		Interval:      cfg.PollInterval,
		Cooldown:      cfg.AlertCooldown,
		RecoverySleep: cfg.RecoverySleep,
		ForceActive:   cfg.ForceActive,
	}, logger)

	handlers := telegram.NewHandlers(userUC, holdingUC, alertUC, portfolioUC, catalog, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	return &App{bot: bot, monitor: monitor, catalog: catalog, logger: logger, store: store}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("narad muni starting")

	// Best effort; symbol validation degrades gracefully without it.
	_ = a.catalog.Load(ctx)

	monitorDone := make(chan error, 1)
	go func() {
		monitorDone <- a.monitor.Run(ctx)
	}()

	a.logger.Info("narad muni started")
	err := a.bot.Start(ctx)
	<-monitorDone
	return err
}

func (a *App) Shutdown() {
	a.logger.Info("narad muni shutting down")
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
