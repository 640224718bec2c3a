package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/filterbotio/autofilter-bot/internal/delivery"
	broadcastDomain "github.com/filterbotio/autofilter-bot/internal/modules/broadcast/domain"
	broadcastService "github.com/filterbotio/autofilter-bot/internal/modules/broadcast/service"
	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	filterService "github.com/filterbotio/autofilter-bot/internal/modules/filter/service"
	matchDomain "github.com/filterbotio/autofilter-bot/internal/modules/match/domain"
	matchService "github.com/filterbotio/autofilter-bot/internal/modules/match/service"
	"github.com/filterbotio/autofilter-bot/internal/shared/config"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

// listFiltersLimit caps how many keywords /listfilters prints.
const listFiltersLimit = 50

// Handler handles Telegram bot interactions
type Handler struct {
	cfg         *config.Config
	filters     *filterService.Service
	directory   *directoryService.Service
	matcher     *matchService.Service
	broadcaster *broadcastService.Service
	logger      *slog.Logger

	mu sync.Mutex
	me string
}

// New creates a new Telegram handler
func New(cfg *config.Config, filters *filterService.Service, directory *directoryService.Service, matcher *matchService.Service, broadcaster *broadcastService.Service, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:         cfg,
		filters:     filters,
		directory:   directory,
		matcher:     matcher,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// RegisterCommands registers bot commands and inline button callbacks
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/ping", bot.MatchTypeExact, h.handlePing)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/myinfo", bot.MatchTypeExact, h.handleMyInfo)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, h.handleStats)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypeExact, h.handleBroadcast)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addfilter", bot.MatchTypePrefix, h.handleAddFilter)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/delfilter", bot.MatchTypePrefix, h.handleDelFilter)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/findfilter", bot.MatchTypePrefix, h.handleFindFilter)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/filters", bot.MatchTypeExact, h.handleListFilters)
	// Kept for muscle memory from older bots.
	b.RegisterHandler(bot.HandlerTypeMessageText, "/listfilters", bot.MatchTypeExact, h.handleListFilters)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "help_commands", bot.MatchTypeExact, h.callbackHelpCommands)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "about_info", bot.MatchTypeExact, h.callbackAbout)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "user_stats", bot.MatchTypeExact, h.callbackUserStats)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "refresh_stats", bot.MatchTypeExact, h.callbackRefreshStats)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "back_to_start", bot.MatchTypeExact, h.callbackBackToStart)
}

// HandleUpdate is the default handler: plain text goes through the keyword
// matcher, stray callbacks get acknowledged so the client stops spinning.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil:
		h.processMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})
	}
}

func (h *Handler) processMessage(ctx context.Context, msg *models.Message) {
	if msg.Text == "" || msg.From == nil {
		return
	}
	kind, err := matchDomain.ParseChatKind(string(msg.Chat.Type))
	if err != nil || kind == matchDomain.ChatKindChannel {
		return
	}

	inbound := matchDomain.Inbound{
		ChatID:   msg.Chat.ID,
		SenderID: msg.From.ID,
		Text:     msg.Text,
		Chat:     kind,
		Sender:   directoryDomain.UserProfile{FirstName: msg.From.FirstName, Username: msg.From.Username},
		Group:    directoryDomain.GroupProfile{Title: msg.Chat.Title, Username: msg.Chat.Username},
	}
	fired, err := h.matcher.HandleMessage(ctx, inbound)
	if err != nil {
		h.logger.Error("failed to handle message", slog.Int64("chat_id", msg.Chat.ID), slog.Any("error", err))
		return
	}
	if len(fired) > 0 {
		h.logger.Debug("filters fired", slog.Int64("chat_id", msg.Chat.ID), slog.Any("keywords", fired))
	}
}

func (h *Handler) isAdmin(userID int64) bool {
	return lo.Contains(h.cfg.AdminIDs, userID)
}

// botUsername resolves and caches the bot's own username for deep links.
func (h *Handler) botUsername(ctx context.Context, b *bot.Bot) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.me == "" {
		if me, err := b.GetMe(ctx); err == nil {
			h.me = me.Username
		}
	}
	return h.me
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil {
		return
	}

	if msg.Chat.Type == models.ChatTypePrivate {
		profile := directoryDomain.UserProfile{FirstName: msg.From.FirstName, Username: msg.From.Username}
		if err := h.directory.RegisterUser(ctx, msg.From.ID, profile); err != nil {
			h.logger.Error("failed to register user", slog.Int64("user_id", msg.From.ID), slog.Any("error", err))
		}
	}

	caption := fmt.Sprintf(`╔═══❰ 🎭 AUTO-FILTER BOT 🎭 ❱═══╗

<b>👋 HEY %s!</b>

<b>🌟 WELCOME TO ADVANCED AUTO-FILTER BOT! 🌟</b>

<b>⚡ FEATURES ⚡</b>
━━━━━━━━━━━━━━━━━━━━
✨ Lightning Fast Search
🎯 Smart Auto-Filter
🔥 Unlimited Collection
📊 Advanced Analytics
🛡️ 24/7 Support
━━━━━━━━━━━━━━━━━━━━

<b>💎 ADD ME TO YOUR GROUP! 💎</b>

╚═══════════════════════════╝`, html.EscapeString(msg.From.FirstName))

	markup := h.startKeyboard(ctx, b)

	if h.cfg.StartPhotoURL != "" {
		_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      msg.Chat.ID,
			Photo:       &models.InputFileString{Data: h.cfg.StartPhotoURL},
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		if err == nil {
			return
		}
		h.logger.Error("failed to send start photo", slog.Any("error", err))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

func (h *Handler) startKeyboard(ctx context.Context, b *bot.Bot) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{
			{Text: "📚 Commands", CallbackData: "help_commands"},
			{Text: "ℹ️ About", CallbackData: "about_info"},
		},
		{
			{Text: "📊 My Stats", CallbackData: "user_stats"},
		},
	}

	if username := h.botUsername(ctx, b); username != "" {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "➕ Add Me To Group ➕", URL: fmt.Sprintf("https://t.me/%s?startgroup=true", username)},
		})
	}

	var links []models.InlineKeyboardButton
	if h.cfg.SupportChat != "" {
		links = append(links, models.InlineKeyboardButton{Text: "💬 Support", URL: "https://t.me/" + h.cfg.SupportChat})
	}
	if h.cfg.UpdateChannel != "" {
		links = append(links, models.InlineKeyboardButton{Text: "📢 Updates", URL: "https://t.me/" + h.cfg.UpdateChannel})
	}
	if len(links) > 0 {
		rows = append(rows, links)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      "<b>👋 Need Help?</b>\n\nClick below for all commands!",
		ParseMode: models.ParseModeHTML,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📚 View Commands", CallbackData: "help_commands"}},
		}},
	})
}

func (h *Handler) handlePing(ctx context.Context, b *bot.Bot, update *models.Update) {
	started := time.Now()
	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      "🏓 <b>Pinging...</b>",
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return
	}
	latency := time.Since(started).Milliseconds()

	var emoji, status string
	switch {
	case latency < 100:
		emoji, status = "🟢", "Excellent"
	case latency < 200:
		emoji, status = "🟡", "Good"
	default:
		emoji, status = "🔴", "Poor"
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: sent.ID,
		Text: fmt.Sprintf("╔═══❰ 🏓 PONG! 🏓 ❱═══╗\n\n"+
			"%s <b>Latency:</b> <code>%d ms</code>\n"+
			"📶 <b>Status:</b> <code>%s</code>\n"+
			"💾 <b>Storage:</b> <code>%s</code>\n\n"+
			"╚═══════════════════════╝", emoji, latency, status, h.directory.BackendName()),
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handler) handleMyInfo(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil {
		return
	}

	text, err := h.renderUserInfo(ctx, msg.From, true)
	if err != nil {
		h.logger.Error("failed to load user info", slog.Int64("user_id", msg.From.ID), slog.Any("error", err))
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
}

// renderUserInfo builds the personal stats screen. Live profile fields come
// from the update, only history comes from the directory.
func (h *Handler) renderUserInfo(ctx context.Context, from *models.User, full bool) (string, error) {
	user, err := h.directory.User(ctx, from.ID)
	if err != nil {
		if errors.Is(err, sharedErrors.ErrUserNotFound) {
			return "❌ No info found. Use /start first!", nil
		}
		return "", err
	}

	if !full {
		return fmt.Sprintf("📊 <b>YOUR STATISTICS</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>User ID:</b> <code>%d</code>\n"+
			"<b>Joined:</b> %s\n"+
			"<b>Searches:</b> <code>%d</code>",
			html.EscapeString(from.FirstName), from.ID, user.JoinDate.Format("02 Jan 2006"), user.SearchCount), nil
	}

	username := "Not Set"
	if from.Username != "" {
		username = "@" + from.Username
	}
	status := "Member"
	if h.isAdmin(from.ID) {
		status = "Admin 👑"
	}

	return fmt.Sprintf("👤 <b>YOUR INFO</b>\n\n"+
		"<b>Name:</b> %s\n"+
		"<b>Username:</b> %s\n"+
		"<b>User ID:</b> <code>%d</code>\n"+
		"<b>Joined:</b> %s\n"+
		"<b>Searches:</b> <code>%d</code>\n"+
		"<b>Status:</b> %s",
		html.EscapeString(from.FirstName), html.EscapeString(username), from.ID,
		user.JoinDate.Format("02 Jan 2006"), user.SearchCount, status), nil
}

func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}

	text, markup, err := h.renderStats(ctx)
	if err != nil {
		h.logger.Error("failed to build stats", slog.Any("error", err))
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

func (h *Handler) renderStats(ctx context.Context) (string, *models.InlineKeyboardMarkup, error) {
	stats, err := h.directory.Stats(ctx)
	if err != nil {
		return "", nil, err
	}
	keywords, err := h.filters.All(ctx)
	if err != nil {
		return "", nil, err
	}

	totalFiles := lo.SumBy(keywords, func(k filterService.KeywordCount) int { return k.Count })

	text := fmt.Sprintf(`╔═══❰ 📊 BOT STATISTICS 📊 ❱═══╗

<b>👥 USER STATS:</b>
━━━━━━━━━━━━━━━━━━
• <b>Total Users:</b> <code>%d</code>
• <b>Total Groups:</b> <code>%d</code>

<b>📁 CONTENT STATS:</b>
━━━━━━━━━━━━━━━━━━
• <b>Total Filters:</b> <code>%d</code>
• <b>Total Files:</b> <code>%d</code>
• <b>Total Searches:</b> <code>%d</code>

<b>⚙️ SYSTEM INFO:</b>
━━━━━━━━━━━━━━━━━━
• <b>Storage:</b> <code>%s</code>
• <b>Uptime:</b> <code>%s</code>
• <b>Broadcasts:</b> <code>%d</code>

╚════════════════════════════╝`,
		stats.Users, stats.Groups, len(keywords), totalFiles, stats.TotalSearches,
		stats.Backend, formatUptime(stats.Uptime), stats.TotalBroadcasts)

	markup := &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "🔄 Refresh", CallbackData: "refresh_stats"}},
	}}
	return text, markup, nil
}

func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

func (h *Handler) handleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}
	if msg.ReplyToMessage == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "❌ Reply to a message to broadcast",
		})
		return
	}

	status, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      "📡 <b>Starting broadcast...</b>",
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("failed to announce broadcast", slog.Any("error", err))
		return
	}

	source := delivery.Location{ChatID: msg.ReplyToMessage.Chat.ID, MessageID: msg.ReplyToMessage.ID}
	onProgress := func(p broadcastDomain.Progress) {
		// Progress edits are cosmetic, failures are ignored.
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: status.ID,
			Text: fmt.Sprintf("📡 <b>Broadcasting:</b> <code>%.1f%%</code>\n✅ Sent: <code>%d</code> | ❌ Failed: <code>%d</code>",
				p.Percent(), p.Success, p.Failed),
			ParseMode: models.ParseModeHTML,
		})
	}

	report, err := h.broadcaster.Run(ctx, source, onProgress)
	if err != nil {
		h.logger.Error("broadcast aborted", slog.Any("error", err))
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: status.ID,
		Text: fmt.Sprintf("╔═══❰ ✅ BROADCAST COMPLETE ❱═══╗\n\n"+
			"• <b>Sent:</b> <code>%d</code> 🟢\n"+
			"• <b>Failed:</b> <code>%d</code> 🔴\n"+
			"• <b>Removed:</b> <code>%d</code> 🗑️\n"+
			"• <b>Time:</b> <code>%.2fs</code>\n"+
			"• <b>Speed:</b> <code>%.1f msg/s</code>\n\n"+
			"╚════════════════════════════╝",
			report.Success, report.Failed, report.Removed, report.Duration.Seconds(), report.Throughput()),
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handler) handleAddFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}

	keyword := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/addfilter"))
	if keyword == "" || msg.ReplyToMessage == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      "<b>Usage:</b> <code>/addfilter &lt;keyword&gt;</code>\n<b>Note:</b> Reply to a message",
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	reply := msg.ReplyToMessage
	payload := filterDomain.Payload{
		ChatID:    reply.Chat.ID,
		MessageID: reply.ID,
		Kind:      detectKind(reply),
		AddedBy:   msg.From.ID,
	}

	stored, err := h.filters.Add(ctx, keyword, payload)
	if err != nil {
		h.logger.Error("failed to add filter", slog.String("keyword", keyword), slog.Any("error", err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "❌ Failed to add filter",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf("✅ <b>Filter Added</b>\n\n<b>Keyword:</b> <code>%s</code>\n<b>Type:</b> <code>%s</code>",
			html.EscapeString(stored), payload.Kind),
		ParseMode: models.ParseModeHTML,
	})
}

// detectKind classifies what the filter will replay.
func detectKind(msg *models.Message) filterDomain.MediaKind {
	switch {
	case msg.Document != nil:
		return filterDomain.MediaKindDocument
	case len(msg.Photo) > 0:
		return filterDomain.MediaKindPhoto
	case msg.Video != nil:
		return filterDomain.MediaKindVideo
	case msg.Text != "":
		return filterDomain.MediaKindText
	default:
		return filterDomain.MediaKindOther
	}
}

func (h *Handler) handleDelFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}

	keyword := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/delfilter"))
	if keyword == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      "<b>Usage:</b> <code>/delfilter &lt;keyword&gt;</code>",
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	removed, err := h.filters.Delete(ctx, keyword)
	if err != nil {
		h.logger.Error("failed to delete filter", slog.String("keyword", keyword), slog.Any("error", err))
		return
	}

	escaped := html.EscapeString(filterDomain.Canonicalize(keyword))
	text := fmt.Sprintf("✅ Filter <code>%s</code> deleted!", escaped)
	if !removed {
		text = fmt.Sprintf("❌ Filter <code>%s</code> not found!", escaped)
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handler) handleFindFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}

	query := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/findfilter"))
	if query == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      "<b>Usage:</b> <code>/findfilter &lt;text&gt;</code>",
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	matches, err := h.filters.Search(ctx, query)
	if err != nil {
		h.logger.Error("failed to search filters", slog.String("query", query), slog.Any("error", err))
		return
	}

	escapedQuery := html.EscapeString(filterDomain.Canonicalize(query))
	if len(matches) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    msg.Chat.ID,
			Text:      fmt.Sprintf("🚫 No filters matching <code>%s</code>!", escapedQuery),
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	var list strings.Builder
	fmt.Fprintf(&list, "🔍 <b>SEARCH RESULTS</b> for <code>%s</code>\n\n", escapedQuery)
	for i, k := range lo.Slice(matches, 0, listFiltersLimit) {
		fmt.Fprintf(&list, "<b>%d.</b> <code>%s</code> - %d files\n", i+1, html.EscapeString(k.Keyword), k.Count)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      list.String(),
		ParseMode: models.ParseModeHTML,
	})
}

func (h *Handler) handleListFilters(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg.From == nil || !h.isAdmin(msg.From.ID) {
		return
	}

	keywords, err := h.filters.All(ctx)
	if err != nil {
		h.logger.Error("failed to list filters", slog.Any("error", err))
		return
	}
	if len(keywords) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "🚫 No filters found!",
		})
		return
	}

	totalFiles := lo.SumBy(keywords, func(k filterService.KeywordCount) int { return k.Count })

	// Busiest keywords first, ties stay in keyword order.
	sort.SliceStable(keywords, func(i, j int) bool { return keywords[i].Count > keywords[j].Count })

	var list strings.Builder
	fmt.Fprintf(&list, "📚 <b>FILTER LIST</b>\n\n<b>Total Keywords:</b> <code>%d</code>\n<b>Total Files:</b> <code>%d</code>\n\n", len(keywords), totalFiles)
	for i, k := range lo.Slice(keywords, 0, listFiltersLimit) {
		fmt.Fprintf(&list, "<b>%d.</b> <code>%s</code> - %d files\n", i+1, html.EscapeString(k.Keyword), k.Count)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    msg.Chat.ID,
		Text:      list.String(),
		ParseMode: models.ParseModeHTML,
	})
}
