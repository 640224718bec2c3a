package domain

import (
	"strings"
	"time"
)

// Payload points at a previously sent message that can be copied back into a
// chat. The content itself is never stored, only its origin location.
type Payload struct {
	ChatID    int64     `json:"chat_id" bson:"chat_id"`
	MessageID int       `json:"message_id" bson:"message_id"`
	Kind      MediaKind `json:"kind" bson:"kind"`
	AddedBy   int64     `json:"added_by" bson:"added_by"`
	AddedAt   time.Time `json:"added_at" bson:"added_at"`
}

// Entry is a stored keyword with its ordered payloads, oldest first.
type Entry struct {
	Keyword  string    `json:"keyword" bson:"_id"`
	Payloads []Payload `json:"payloads" bson:"payloads"`
}

// Canonicalize maps a keyword to its stored form. Matching lowercases the
// incoming text the same way, so lookups stay case-insensitive.
func Canonicalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
