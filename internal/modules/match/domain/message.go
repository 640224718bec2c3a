package domain

import (
	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
)

// Inbound is one chat message to run against the filter index. The transport
// fills it from the platform update; edited messages never get this far.
type Inbound struct {
	ChatID   int64
	SenderID int64
	Text     string
	Chat     ChatKind

	// Sender is used to keep the user directory fresh on private messages.
	Sender directoryDomain.UserProfile
	// Group is used the same way for group messages. MemberCount is filled
	// by the matcher, not the transport.
	Group directoryDomain.GroupProfile
}
