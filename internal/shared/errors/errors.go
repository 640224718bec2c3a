package errors

import "errors"

var (
	ErrMissingBotToken   = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrEmptyKeyword      = errors.New("keyword must not be empty")
	ErrUserNotFound      = errors.New("user not found")
	ErrNoBroadcastSource = errors.New("broadcast requires a source message")
)
