package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = `📚 <b>BOT COMMANDS</b>

<b>User Commands:</b>
• <code>/start</code> - Start bot
• <code>/ping</code> - Check latency
• <code>/myinfo</code> - Your stats

<b>Admin Commands:</b>
• <code>/addfilter &lt;keyword&gt;</code> - Add filter
• <code>/delfilter &lt;keyword&gt;</code> - Delete filter
• <code>/filters</code> - List filters
• <code>/findfilter &lt;text&gt;</code> - Search filters
• <code>/broadcast</code> - Broadcast message
• <code>/stats</code> - Bot statistics`

func backKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "🏠 Back", CallbackData: "back_to_start"}},
	}}
}

func (h *Handler) answer(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// editCallback swaps the message behind an inline button for a new screen
// and acknowledges the tap. Messages Telegram reports as inaccessible get
// the ack only.
func (h *Handler) editCallback(ctx context.Context, b *bot.Bot, cq *models.CallbackQuery, text string, markup *models.InlineKeyboardMarkup) {
	msg := cq.Message.Message
	if msg == nil {
		h.answer(ctx, b, cq.ID, "", false)
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("failed to edit callback message", slog.String("data", cq.Data), slog.Any("error", err))
	}
	h.answer(ctx, b, cq.ID, "", false)
}

func (h *Handler) callbackHelpCommands(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.editCallback(ctx, b, update.CallbackQuery, helpText, backKeyboard())
}

func (h *Handler) callbackBackToStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery

	caption := fmt.Sprintf(`╔═══❰ 🎭 AUTO-FILTER BOT 🎭 ❱═══╗

<b>👋 Welcome %s!</b>

Use buttons below to navigate.

╚═══════════════════════════╝`, html.EscapeString(cq.From.FirstName))

	markup := &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{
			{Text: "📚 Commands", CallbackData: "help_commands"},
			{Text: "ℹ️ About", CallbackData: "about_info"},
		},
		{
			{Text: "📊 My Stats", CallbackData: "user_stats"},
		},
	}}
	h.editCallback(ctx, b, cq, caption, markup)
}

func (h *Handler) callbackAbout(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery

	stats, err := h.directory.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to build about screen", slog.Any("error", err))
		h.answer(ctx, b, cq.ID, "❌ Error occurred!", true)
		return
	}

	text := fmt.Sprintf("ℹ️ <b>ABOUT BOT</b>\n\n"+
		"<b>Statistics:</b>\n"+
		"• Users: <code>%d</code>\n"+
		"• Groups: <code>%d</code>\n"+
		"• Storage: <code>%s</code>",
		stats.Users, stats.Groups, stats.Backend)
	if h.cfg.SupportChat != "" {
		text += fmt.Sprintf("\n\n<b>Support:</b> @%s", html.EscapeString(h.cfg.SupportChat))
	}

	h.editCallback(ctx, b, cq, text, backKeyboard())
}

func (h *Handler) callbackUserStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery

	text, err := h.renderUserInfo(ctx, &cq.From, false)
	if err != nil {
		h.logger.Error("failed to load user stats", slog.Int64("user_id", cq.From.ID), slog.Any("error", err))
		h.answer(ctx, b, cq.ID, "❌ Error occurred!", true)
		return
	}
	h.editCallback(ctx, b, cq, text, backKeyboard())
}

func (h *Handler) callbackRefreshStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery

	if !h.isAdmin(cq.From.ID) {
		h.answer(ctx, b, cq.ID, "❌ Admin only!", true)
		return
	}

	text, markup, err := h.renderStats(ctx)
	if err != nil {
		h.logger.Error("failed to refresh stats", slog.Any("error", err))
		h.answer(ctx, b, cq.ID, "❌ Error occurred!", true)
		return
	}

	h.answer(ctx, b, cq.ID, "Refreshing...", false)
	msg := cq.Message.Message
	if msg == nil {
		return
	}
	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	}); err != nil {
		h.logger.Error("failed to edit stats message", slog.Any("error", err))
	}
}
