// Package delivery defines the narrow sending surface the services need,
// keeping them decoupled from the chat platform client.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Location identifies a previously sent message by chat and message ID.
type Location struct {
	ChatID    int64
	MessageID int
}

// Courier sends content on behalf of the services. Implementations translate
// platform errors into the two failure classes below; anything else passes
// through unchanged.
type Courier interface {
	// CopyMessage re-sends the message at from into toChatID without a
	// forward header.
	CopyMessage(ctx context.Context, toChatID int64, from Location) error

	// SendText sends a plain text message.
	SendText(ctx context.Context, chatID int64, text string) error

	// MemberCount reports the member count of a group chat, 0 when the
	// platform will not say.
	MemberCount(ctx context.Context, chatID int64) int
}

// ErrRecipientUnreachable marks a permanently dead destination: the user
// blocked the bot, deactivated their account, or the chat is gone. Senders
// treat it as a signal to forget the recipient.
var ErrRecipientUnreachable = errors.New("recipient unreachable")

// RateLimitedError reports that the platform demanded a pause before the
// send may be retried.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Classify maps a CopyMessage error onto the outcome the send loops branch
// on. The duration is the demanded pause for OutcomeRateLimited and zero
// otherwise.
func Classify(err error) (Outcome, time.Duration) {
	if err == nil {
		return OutcomeDelivered, 0
	}
	var rateLimited *RateLimitedError
	if errors.As(err, &rateLimited) {
		return OutcomeRateLimited, rateLimited.RetryAfter
	}
	if errors.Is(err, ErrRecipientUnreachable) {
		return OutcomeUnreachable, 0
	}
	return OutcomeFailed, 0
}

// Wait pauses between sends, returning early with ctx.Err() when the caller
// is shutting down.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
