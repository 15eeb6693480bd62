package approval

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram asks for approval via an inline keyboard and waits for the
// button callback. Lets the operator approve from their phone instead of
// sitting at the terminal.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

const (
	callbackApprove = "approve"
	callbackSkip    = "skip"
)

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Confirm(ctx context.Context, prompt string) (bool, error) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", callbackApprove),
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip", callbackSkip),
		),
	)

	msg := tgbotapi.NewMessage(t.chatID, prompt)
	msg.ReplyMarkup = keyboard
	sent, err := t.api.Send(msg)
	if err != nil {
		return false, fmt.Errorf("failed to send approval request: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return false, fmt.Errorf("telegram update stream closed")
			}
			cb := update.CallbackQuery
			if cb == nil || cb.Message == nil || cb.Message.MessageID != sent.MessageID {
				continue
			}
			//acknowledge the button press so the client stops spinning
			if _, err := t.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
				return false, fmt.Errorf("failed to ack approval callback: %w", err)
			}
			return cb.Data == callbackApprove, nil
		}
	}
}
