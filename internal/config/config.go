package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken    string        `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramPollTimeout int           `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	NotifyTimeout       time.Duration `env:"NOTIFY_TIMEOUT,default=10s"`

	DBPath string `env:"DB_PATH,default=instance/database.db"`

	QuoteBaseURL string        `env:"QUOTE_BASE_URL,default=https://query1.finance.yahoo.com"`
	QuoteTimeout time.Duration `env:"QUOTE_TIMEOUT,default=10s"`

	CatalogURL     string        `env:"CATALOG_URL,default=https://nsearchives.nseindia.com/content/equities/EQUITY_L.csv"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT,default=30s"`

	PollInterval  time.Duration `env:"POLL_INTERVAL,default=10s"`
	RecoverySleep time.Duration `env:"RECOVERY_SLEEP,default=5s"`
	AlertCooldown time.Duration `env:"ALERT_COOLDOWN,default=120s"`
	PriceCacheTTL time.Duration `env:"PRICE_CACHE_TTL,default=60s"`

	MarketOpen   string        `env:"MARKET_OPEN,default=09:15"`
	MarketClose  string        `env:"MARKET_CLOSE,default=15:30"`
	MarketOffset time.Duration `env:"MARKET_UTC_OFFSET,default=5h30m"`
	// ForceActive makes the monitor poll regardless of market hours.
	ForceActive bool `env:"MONITOR_FORCE_ACTIVE,default=false"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
