package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"

	"github.com/filterbotio/autofilter-bot/internal/delivery"
)

// Courier sends through the live bot API, translating its errors into the
// delivery failure classes. The bot is attached after construction because
// building the bot needs handlers and handlers need services.
type Courier struct {
	b *bot.Bot
}

// NewCourier creates a courier without a bot attached.
func NewCourier() *Courier {
	return &Courier{}
}

// SetBot attaches the live bot. Must happen before the bot starts polling.
func (c *Courier) SetBot(b *bot.Bot) {
	c.b = b
}

var _ delivery.Courier = (*Courier)(nil)

func (c *Courier) CopyMessage(ctx context.Context, toChatID int64, from delivery.Location) error {
	_, err := c.b.CopyMessage(ctx, &bot.CopyMessageParams{
		ChatID:     toChatID,
		FromChatID: from.ChatID,
		MessageID:  from.MessageID,
	})
	return classify(err)
}

func (c *Courier) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := c.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return classify(err)
}

func (c *Courier) MemberCount(ctx context.Context, chatID int64) int {
	count, err := c.b.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chatID})
	if err != nil {
		return 0
	}
	return count
}

// classify maps API errors onto the delivery failure classes. A forbidden
// response means the user blocked the bot or is gone; "chat not found" means
// the chat ID no longer resolves. Both make the recipient unreachable.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var tooMany *bot.TooManyRequestsError
	if errors.As(err, &tooMany) {
		return &delivery.RateLimitedError{RetryAfter: time.Duration(tooMany.RetryAfter) * time.Second}
	}

	if errors.Is(err, bot.ErrorForbidden) {
		return fmt.Errorf("%w: %w", delivery.ErrRecipientUnreachable, err)
	}
	if errors.Is(err, bot.ErrorBadRequest) && strings.Contains(err.Error(), "chat not found") {
		return fmt.Errorf("%w: %w", delivery.ErrRecipientUnreachable, err)
	}
	return err
}
