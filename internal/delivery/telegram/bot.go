package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	handlers    *Handlers
	pollTimeout int
}

// NewAPI builds the Telegram client with a hard request timeout so a
// slow API call can never stall the monitor's alert cycle.
func NewAPI(token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
}

func NewBot(api *tgbotapi.BotAPI, handlers *Handlers, pollTimeout int) *Bot {
	return &Bot{api: api, handlers: handlers, pollTimeout: pollTimeout}
}

func (b *Bot) Start(ctx context.Context) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(config)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handlers.HandleUpdate(ctx, b.api, update)
		}
	}
}

// Notifier delivers alert messages to a chat id stored as a string
// notification target.
type Notifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, logger: logger}
}

func (n *Notifier) Notify(target string, text string) error {
	chatID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		n.logger.Warn("bad notification target", zap.String("target", target), zap.Error(err))
		return err
	}
	n.logger.Info("telegram notify send", zap.Int64("chat_id", chatID))
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("failed to notify", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}
