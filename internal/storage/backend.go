package storage

import (
	"context"
	"time"

	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
)

// Backend is the single persistence contract shared by every component.
// Two variants exist: a local JSON file store and a MongoDB document store,
// chosen once by Open at startup. Both expose identical observable
// semantics, so callers never branch on which one is active.
type Backend interface {
	// AddFilterPayload appends a payload to a keyword, creating the filter
	// entry if it does not exist yet. Payload order is insertion order.
	AddFilterPayload(ctx context.Context, keyword string, payload filterDomain.Payload) error
	// Filters returns every stored filter keyed by keyword, payloads oldest
	// first.
	Filters(ctx context.Context) (map[string][]filterDomain.Payload, error)
	// DeleteFilter removes a keyword with all its payloads and reports
	// whether it existed.
	DeleteFilter(ctx context.Context, keyword string) (bool, error)

	// UpsertUser creates or refreshes a user record. JoinDate and
	// SearchCount are preserved for known users; profile fields and
	// LastSeen always refresh.
	UpsertUser(ctx context.Context, id int64, profile directoryDomain.UserProfile) error
	// User returns a stored record or errors.ErrUserNotFound.
	User(ctx context.Context, id int64) (*directoryDomain.UserRecord, error)
	// UserIDs returns all known user ids in ascending order.
	UserIDs(ctx context.Context) ([]int64, error)
	// RemoveUser deletes a user record. Removing an unknown id is a no-op.
	RemoveUser(ctx context.Context, id int64) error
	// IncrementUserSearches bumps the per-user search counter for a known
	// user; unknown ids are ignored.
	IncrementUserSearches(ctx context.Context, id int64) error

	// UpsertGroup and GroupIDs mirror the user operations for group chats.
	UpsertGroup(ctx context.Context, id int64, profile directoryDomain.GroupProfile) error
	GroupIDs(ctx context.Context) ([]int64, error)

	// IncrementCounter bumps a named global counter, creating it at 1 on
	// first use. Counters returns the whole counter map.
	IncrementCounter(ctx context.Context, name string) error
	Counters(ctx context.Context) (map[string]int64, error)

	// StartedAt is the moment this process opened the backend. It is never
	// restored from persisted state, so uptime reporting is per process.
	StartedAt() time.Time

	// Name identifies the active variant for status surfaces.
	Name() string

	Close(ctx context.Context) error
}
