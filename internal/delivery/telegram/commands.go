package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const HelpText = `Commands:
/start - register
/help - show this help
/add <symbol> <quantity> <buy_price>
/remove <holding_id>
/portfolio - holdings with live P&L
/alert <symbol> <target_price> [ABOVE|BELOW]
/alerts - list your alerts
/delalert <alert_id>
/pause <alert_id>
/resume <alert_id>
/test - send yourself a test notification

Notes:
- Bare symbols are treated as NSE tickers (RELIANCE -> RELIANCE.NS).
- Omit the alert direction and it is derived from the current price.
Example:
/add RELIANCE 10 2850.50
/alert RELIANCE 3000
`

var ErrInvalidArguments = errors.New("invalid arguments")

func ParseAddArgs(args string) (symbol string, quantity, buyPrice decimal.Decimal, err error) {
	parts := strings.Fields(args)
	if len(parts) != 3 {
		return "", decimal.Zero, decimal.Zero, ErrInvalidArguments
	}
	quantity, err = decimal.NewFromString(parts[1])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, ErrInvalidArguments
	}
	buyPrice, err = decimal.NewFromString(parts[2])
	if err != nil {
		return "", decimal.Zero, decimal.Zero, ErrInvalidArguments
	}
	return parts[0], quantity, buyPrice, nil
}

func ParseAlertArgs(args string) (symbol, condition string, target decimal.Decimal, err error) {
	parts := strings.Fields(args)
	if len(parts) != 2 && len(parts) != 3 {
		return "", "", decimal.Zero, ErrInvalidArguments
	}
	target, err = decimal.NewFromString(parts[1])
	if err != nil {
		return "", "", decimal.Zero, ErrInvalidArguments
	}
	if len(parts) == 3 {
		condition = parts[2]
	}
	return parts[0], condition, target, nil
}

func ParseID(args string) (uint, error) {
	idStr := strings.TrimSpace(args)
	if idStr == "" {
		return 0, ErrInvalidArguments
	}
	idStr = strings.TrimPrefix(idStr, "#")
	value, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return uint(value), nil
}
