package service

import (
	"context"
	"time"

	"github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	"github.com/filterbotio/autofilter-bot/internal/storage"
)

// Service tracks every user and group the bot has talked to
type Service struct {
	backend storage.Backend
}

// New creates a new directory service
func New(backend storage.Backend) *Service {
	return &Service{backend: backend}
}

// RegisterUser records a private-chat user, refreshing the profile on every
// contact. Join date and search history survive re-registration.
func (s *Service) RegisterUser(ctx context.Context, id int64, profile domain.UserProfile) error {
	return s.backend.UpsertUser(ctx, id, profile)
}

// RecordUserSearch bumps the per-user search counter. Unknown users are
// ignored rather than created half-filled.
func (s *Service) RecordUserSearch(ctx context.Context, id int64) error {
	return s.backend.IncrementUserSearches(ctx, id)
}

// User returns the stored record, or errors.ErrUserNotFound.
func (s *Service) User(ctx context.Context, id int64) (*domain.UserRecord, error) {
	return s.backend.User(ctx, id)
}

// RemoveUser drops a user from the directory. Removing an absent user is a
// no-op, so delivery code can report the same user dead twice.
func (s *Service) RemoveUser(ctx context.Context, id int64) error {
	return s.backend.RemoveUser(ctx, id)
}

// RegisterGroup records a group chat, refreshing its profile on activity.
func (s *Service) RegisterGroup(ctx context.Context, id int64, profile domain.GroupProfile) error {
	return s.backend.UpsertGroup(ctx, id, profile)
}

// UserIDs returns all known user chat IDs in ascending order.
func (s *Service) UserIDs(ctx context.Context) ([]int64, error) {
	return s.backend.UserIDs(ctx)
}

// GroupIDs returns all known group chat IDs in ascending order.
func (s *Service) GroupIDs(ctx context.Context) ([]int64, error) {
	return s.backend.GroupIDs(ctx)
}

// BackendName names the active storage backend for status surfaces.
func (s *Service) BackendName() string {
	return s.backend.Name()
}

// Uptime reports how long this process has been serving.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.backend.StartedAt())
}

// RecordTriggeredSearch bumps the global search counter. Called once per
// message that fired at least one keyword, however many fired.
func (s *Service) RecordTriggeredSearch(ctx context.Context) error {
	return s.backend.IncrementCounter(ctx, domain.CounterTotalSearches)
}

// RecordBroadcast bumps the global broadcast counter.
func (s *Service) RecordBroadcast(ctx context.Context) error {
	return s.backend.IncrementCounter(ctx, domain.CounterTotalBroadcasts)
}

// Stats assembles the status snapshot shown by /stats and the HTTP API.
// Uptime is measured from process start, not from any persisted timestamp.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	users, err := s.backend.UserIDs(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.backend.GroupIDs(ctx)
	if err != nil {
		return nil, err
	}
	counters, err := s.backend.Counters(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		Users:           len(users),
		Groups:          len(groups),
		TotalSearches:   counters[domain.CounterTotalSearches],
		TotalBroadcasts: counters[domain.CounterTotalBroadcasts],
		Uptime:          time.Since(s.backend.StartedAt()),
		Backend:         s.backend.Name(),
	}, nil
}
