package domain

import "time"

// Stats is a point-in-time service snapshot for status surfaces.
type Stats struct {
	Users           int
	Groups          int
	TotalSearches   int64
	TotalBroadcasts int64
	Uptime          time.Duration
	Backend         string
}
