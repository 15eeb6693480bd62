package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter delivers the daily report to the operator's chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendReport(report Report) error {
	text := fmt.Sprintf(
		"📊 <b>Daily Summary %s</b>\n"+
			"🤝 Recruiters contacted: %d\n"+
			"📄 Jobs applied: %d\n"+
			"⚡ Actions today: %d/%d (%d remaining)",
		report.Summary.Date,
		report.Summary.RecruitersContacted,
		report.Summary.JobsApplied,
		report.RateStats.ActionsToday,
		report.RateStats.MaxActions,
		report.RateStats.Remaining,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Copilot Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
