package domain

import "time"

// UserRecord tracks a user the bot has talked to in a private chat.
// JoinDate and SearchCount survive re-registration; only the profile
// fields and LastSeen refresh on later interactions.
type UserRecord struct {
	ID          int64     `json:"id" bson:"_id"`
	FirstName   string    `json:"first_name" bson:"first_name"`
	Username    string    `json:"username" bson:"username"`
	JoinDate    time.Time `json:"join_date" bson:"join_date"`
	LastSeen    time.Time `json:"last_seen" bson:"last_seen"`
	SearchCount int64     `json:"search_count" bson:"search_count"`
}

// UserProfile carries the refreshable part of a user record.
type UserProfile struct {
	FirstName string
	Username  string
}
