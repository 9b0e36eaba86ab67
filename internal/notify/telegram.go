package notify

import (
	"fmt"
	"strings"

	"autocareer/internal/apply"
	"autocareer/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter sends one message per completed application attempt so a
// human can follow the queue from their phone.
type TelegramReporter struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

var _ apply.Notifier = (*TelegramReporter)(nil)

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramReporter{
		api:    api,
		chatID: chatID,
	}, nil
}

func (r *TelegramReporter) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func (r *TelegramReporter) ReportAttempt(item models.QueueItem, result *apply.Result) error {
	icon := "✅"
	switch result.Status {
	case apply.StatusManualRequired:
		icon = "✋"
	case apply.StatusError:
		icon = "❌"
	case apply.StatusDryRunComplete:
		icon = "🧪"
	}

	msgText := fmt.Sprintf("%s *%s*\n", icon, r.escapeMarkdown(item.JobTitle))
	msgText += fmt.Sprintf("🏢 %s\n", r.escapeMarkdown(item.JobCompany))
	msgText += fmt.Sprintf("🔗 [View Job](%s)\n", item.JobURL)
	msgText += fmt.Sprintf("📋 Status: %s\n", r.escapeMarkdown(string(result.Status)))
	msgText += fmt.Sprintf("📝 Fields filled: %d/%d\n", len(result.FieldsFilled), len(result.FieldsDetected))
	if result.ScreenshotPath != "" {
		msgText += fmt.Sprintf("📸 %s\n", r.escapeMarkdown(result.ScreenshotPath))
	}

	msg := tgbotapi.NewMessage(r.chatID, msgText)
	msg.ParseMode = "MarkdownV2"

	_, err := r.api.Send(msg)
	return err
}

func (r *TelegramReporter) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(r.chatID, "ℹ️ "+message)
	_, err := r.api.Send(msg)
	return err
}
