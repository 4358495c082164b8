package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
	"github.com/imRishabh-ofc/narad-muni/internal/usecase"
)

type Handlers struct {
	userUC      *usecase.UserUsecase
	holdingUC   *usecase.HoldingUsecase
	alertUC     *usecase.AlertUsecase
	portfolioUC *usecase.PortfolioUsecase
	catalog     *usecase.CatalogUsecase
	logger      *zap.Logger
}

func NewHandlers(userUC *usecase.UserUsecase, holdingUC *usecase.HoldingUsecase, alertUC *usecase.AlertUsecase, portfolioUC *usecase.PortfolioUsecase, catalog *usecase.CatalogUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{userUC: userUC, holdingUC: holdingUC, alertUC: alertUC, portfolioUC: portfolioUC, catalog: catalog, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
		return
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	username := update.Message.From.UserName

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.String("username", username),
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "start":
		_, err := h.userUC.StartOrGetUser(ctx, chatID, username)
		if err != nil {
			h.logger.Warn("start command failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.reply(api, chatID, "Failed to register. Please try again.")
			return
		}
		h.logger.Info("start command complete", zap.Int64("chat_id", chatID))
		h.reply(api, chatID, "Narayan Narayan! 🙏 Narad Muni at your service.\n\n"+HelpText)
	case "help":
		h.reply(api, chatID, HelpText)
	case "add":
		symbol, quantity, buyPrice, err := ParseAddArgs(args)
		if err != nil {
			h.logger.Warn("add invalid args", zap.Int64("chat_id", chatID), zap.String("args", args))
			h.reply(api, chatID, "Usage: /add <symbol> <quantity> <buy_price>")
			return
		}
		holding, err := h.holdingUC.AddHolding(ctx, chatID, symbol, quantity, buyPrice)
		if err != nil {
			h.logger.Warn("add failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("add complete", zap.Int64("chat_id", chatID), zap.Uint("holding_id", holding.ID))
		h.reply(api, chatID, fmt.Sprintf("Added #%d %s x%s @ ₹%s", holding.ID, holding.Symbol, holding.Quantity, holding.BuyPrice))
	case "remove":
		holdingID, err := ParseID(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /remove <holding_id>")
			return
		}
		if err := h.holdingUC.RemoveHolding(ctx, chatID, holdingID); err != nil {
			h.logger.Warn("remove failed", zap.Int64("chat_id", chatID), zap.Uint("holding_id", holdingID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("remove complete", zap.Int64("chat_id", chatID), zap.Uint("holding_id", holdingID))
		h.reply(api, chatID, fmt.Sprintf("Holding #%d removed.", holdingID))
	case "portfolio":
		report, err := h.portfolioUC.Summary(ctx, chatID)
		if err != nil {
			h.logger.Warn("portfolio failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if len(report.Rows) == 0 {
			h.reply(api, chatID, "No holdings yet. Use /add to track one.")
			return
		}
		h.reply(api, chatID, h.formatPortfolio(report))
	case "alert":
		symbol, condition, target, err := ParseAlertArgs(args)
		if err != nil {
			h.logger.Warn("alert invalid args", zap.Int64("chat_id", chatID), zap.String("args", args))
			h.reply(api, chatID, "Usage: /alert <symbol> <target_price> [ABOVE|BELOW]")
			return
		}
		alert, err := h.alertUC.CreateAlert(ctx, chatID, symbol, condition, target)
		if err != nil {
			h.logger.Warn("alert failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("alert complete", zap.Int64("chat_id", chatID), zap.Uint("alert_id", alert.ID))
		h.reply(api, chatID, fmt.Sprintf("Alert created: #%d %s %s ₹%s", alert.ID, alert.Symbol, alert.Condition, alert.TargetPrice))
	case "alerts":
		alerts, err := h.alertUC.ListAlerts(ctx, chatID)
		if err != nil {
			h.logger.Warn("alerts list failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if len(alerts) == 0 {
			h.reply(api, chatID, "No alerts yet. Use /alert to create one.")
			return
		}
		var builder strings.Builder
		builder.WriteString("Your alerts:\n")
		for _, alert := range alerts {
			status := "paused"
			if alert.IsActive {
				status = "active"
			}
			builder.WriteString(fmt.Sprintf("#%d [%s] %s %s ₹%s\n", alert.ID, status, alert.Symbol, alert.Condition, alert.TargetPrice))
		}
		h.reply(api, chatID, builder.String())
	case "delalert":
		alertID, err := ParseID(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /delalert <alert_id>")
			return
		}
		if err := h.alertUC.DeleteAlert(ctx, chatID, alertID); err != nil {
			h.logger.Warn("delalert failed", zap.Int64("chat_id", chatID), zap.Uint("alert_id", alertID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("delalert complete", zap.Int64("chat_id", chatID), zap.Uint("alert_id", alertID))
		h.reply(api, chatID, fmt.Sprintf("Alert #%d deleted.", alertID))
	case "pause":
		h.setAlertActive(ctx, api, chatID, args, false)
	case "resume":
		h.setAlertActive(ctx, api, chatID, args, true)
	case "test":
		if _, err := h.userUC.GetByChat(ctx, chatID); err != nil {
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, "Narayan... Narayan... 🙏\n\nTest notification, Prabhu. Alerts will arrive here.\n\nJay Ho! 🕉️")
	default:
		h.logger.Warn("unknown command", zap.Int64("chat_id", chatID), zap.String("command", command))
		h.reply(api, chatID, "Unknown command.\n\n"+HelpText)
	}
}

func (h *Handlers) setAlertActive(ctx context.Context, api *tgbotapi.BotAPI, chatID int64, args string, active bool) {
	verb := "paused"
	usage := "Usage: /pause <alert_id>"
	if active {
		verb = "resumed"
		usage = "Usage: /resume <alert_id>"
	}
	alertID, err := ParseID(args)
	if err != nil {
		h.reply(api, chatID, usage)
		return
	}
	if err := h.alertUC.SetAlertActive(ctx, chatID, alertID, active); err != nil {
		h.logger.Warn("set alert active failed", zap.Int64("chat_id", chatID), zap.Uint("alert_id", alertID), zap.Bool("active", active), zap.Error(err))
		h.reply(api, chatID, h.errorMessage(err))
		return
	}
	h.logger.Info("set alert active complete", zap.Int64("chat_id", chatID), zap.Uint("alert_id", alertID), zap.Bool("active", active))
	h.reply(api, chatID, fmt.Sprintf("Alert #%d %s.", alertID, verb))
}

func (h *Handlers) formatPortfolio(report usecase.PortfolioReport) string {
	var builder strings.Builder
	builder.WriteString("📊 Portfolio\n\n")
	for _, row := range report.Rows {
		name := row.Symbol
		if h.catalog != nil {
			name = h.catalog.Name(row.Symbol)
		}
		builder.WriteString(fmt.Sprintf("#%d %s (%s)\n  x%s @ ₹%s → ₹%s\n  P&L: ₹%s (%s%%)\n",
			row.HoldingID, name, row.Symbol,
			row.Quantity, row.BuyPrice, row.LivePrice,
			row.PnL.StringFixed(2), row.PnLPct.StringFixed(2)))
	}
	builder.WriteString(fmt.Sprintf("\nInvested: ₹%s\nCurrent: ₹%s\nTotal P&L: ₹%s\nToday's P&L: ₹%s",
		report.Invested.StringFixed(2), report.CurrentValue.StringFixed(2),
		report.TotalPnL.StringFixed(2), report.DailyPnL.StringFixed(2)))
	return builder.String()
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return "Please /start to register first."
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return "Invalid quantity. Use a positive number."
	case errors.Is(err, usecase.ErrInvalidPrice):
		return "Invalid buy price. Use a non-negative number."
	case errors.Is(err, usecase.ErrInvalidTarget):
		return "Invalid target price. Use a positive number."
	case errors.Is(err, usecase.ErrSymbolUnknown):
		return "Symbol not found on NSE. Check the ticker and try again."
	case errors.Is(err, usecase.ErrHoldingNotFound):
		return "Holding not found."
	case errors.Is(err, usecase.ErrAlertNotFound):
		return "Alert not found."
	case errors.Is(err, domain.ErrInvalidCondition):
		return "Invalid direction. Use ABOVE or BELOW, or omit it."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}
