package domain

import "time"

// GroupRecord tracks a group chat the bot is a member of. MemberCount is
// best effort and may be stale or zero.
type GroupRecord struct {
	ID          int64     `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Username    string    `json:"username" bson:"username"`
	MemberCount int       `json:"member_count" bson:"member_count"`
	JoinDate    time.Time `json:"join_date" bson:"join_date"`
	LastActive  time.Time `json:"last_active" bson:"last_active"`
}

// GroupProfile carries the refreshable part of a group record.
type GroupProfile struct {
	Title       string
	Username    string
	MemberCount int
}

// Well-known counter names. The counter set is open ended; these are the
// ones the bot increments itself.
const (
	CounterTotalSearches   = "total_searches"
	CounterTotalBroadcasts = "total_broadcasts"
)
