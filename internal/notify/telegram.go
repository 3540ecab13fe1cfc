package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/logger"
)

// Notifier delivers recommendation alerts
type Notifier interface {
	Notify(ctx context.Context, report *contracts.AnalysisReport) error
}

// Nop drops every alert
type Nop struct{}

// Notify implements Notifier
func (Nop) Notify(context.Context, *contracts.AnalysisReport) error { return nil }

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts BUY/SELL recommendations to one chat.
// HOLD and failed recommendations are never sent.
type Telegram struct {
	bot    sender
	chatID int64
	logger *logger.Logger
}

// New returns a Telegram notifier when configured, Nop otherwise
func New(cfg *config.Config, log *logger.Logger) (Notifier, error) {
	if !cfg.Telegram.Enabled() {
		return Nop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	log.WithField("bot", bot.Self.UserName).Info("Telegram alerts enabled")

	return &Telegram{bot: bot, chatID: cfg.Telegram.ChatID, logger: log}, nil
}

// Notify implements Notifier
func (t *Telegram) Notify(ctx context.Context, report *contracts.AnalysisReport) error {
	if report == nil || !report.Recommendation.IsActionable() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatAlert(report))
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send alert %s: %w", report.Symbol, err)
	}

	t.logger.WithFields(map[string]interface{}{
		"symbol": report.Symbol,
		"action": report.Recommendation.Action,
	}).Info("Alert sent")
	return nil
}

// FormatAlert renders a short plain-text alert
func FormatAlert(report *contracts.AnalysisReport) string {
	rec := report.Recommendation

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s @ %.2f\n", rec.Action, report.Symbol, report.CurrentPrice)
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", rec.Confidence)
	fmt.Fprintf(&b, "Target: %.2f  Stop: %.2f\n", rec.TargetPrice, rec.StopLoss)
	fmt.Fprintf(&b, "Risk: %s  Horizon: %d weeks\n", rec.RiskLevel, rec.TimeHorizonWeeks)
	fmt.Fprintf(&b, "Position: %s\n", rec.PositionSize)
	b.WriteString(rec.Reasoning)
	return b.String()
}
