package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

const (
	filtersFile = "filters.json"
	usersFile   = "users.json"
	groupsFile  = "groups.json"
	statsFile   = "stats.json"
)

// statsState is the on-disk shape of the counters record set. StartedAt is
// written for operator inspection but never read back; the in-memory value
// set at construction stays authoritative for uptime.
type statsState struct {
	Counters  map[string]int64 `json:"counters"`
	StartedAt time.Time        `json:"process_started_at"`
}

// FileBackend keeps the whole state in memory and rewrites the affected
// record set on every mutation. The file format has no partial-update
// primitive, so mutations are serialized through one writer lock; without it
// two interleaved read-modify-write cycles would silently drop the earlier
// one's effect.
type FileBackend struct {
	dir       string
	startedAt time.Time

	mu       sync.RWMutex
	filters  map[string][]filterDomain.Payload
	users    map[int64]*directoryDomain.UserRecord
	groups   map[int64]*directoryDomain.GroupRecord
	counters map[string]int64
}

// NewFileBackend loads existing state from dir, creating it when absent.
// Corrupt state files fail construction rather than being silently reset.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, oops.With("dir", dir, "context", "failed to create storage directory").Wrap(err)
	}

	b := &FileBackend{
		dir:       dir,
		startedAt: time.Now(),
		filters:   make(map[string][]filterDomain.Payload),
		users:     make(map[int64]*directoryDomain.UserRecord),
		groups:    make(map[int64]*directoryDomain.GroupRecord),
		counters:  make(map[string]int64),
	}

	if err := b.loadFile(filtersFile, &b.filters); err != nil {
		return nil, err
	}
	if err := b.loadFile(usersFile, &b.users); err != nil {
		return nil, err
	}
	if err := b.loadFile(groupsFile, &b.groups); err != nil {
		return nil, err
	}
	var stats statsState
	if err := b.loadFile(statsFile, &stats); err != nil {
		return nil, err
	}
	if stats.Counters != nil {
		b.counters = stats.Counters
	}

	return b, nil
}

func (b *FileBackend) loadFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return oops.With("file", name, "context", "failed to read state file").Wrap(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return oops.With("file", name, "context", "failed to parse state file").Wrap(err)
	}
	return nil
}

// writeFile rewrites one record set wholesale. The rename keeps a crash
// mid-write from truncating the previous state.
func (b *FileBackend) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return oops.With("file", name, "context", "failed to marshal state").Wrap(err)
	}
	path := filepath.Join(b.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return oops.With("file", name, "context", "failed to write state file").Wrap(err)
	}
	return os.Rename(tmp, path)
}

func (b *FileBackend) writeStats() error {
	return b.writeFile(statsFile, statsState{Counters: b.counters, StartedAt: b.startedAt})
}

func (b *FileBackend) AddFilterPayload(_ context.Context, keyword string, payload filterDomain.Payload) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filters[keyword] = append(b.filters[keyword], payload)
	return b.writeFile(filtersFile, b.filters)
}

func (b *FileBackend) Filters(_ context.Context) (map[string][]filterDomain.Payload, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string][]filterDomain.Payload, len(b.filters))
	for keyword, payloads := range b.filters {
		out[keyword] = append([]filterDomain.Payload(nil), payloads...)
	}
	return out, nil
}

func (b *FileBackend) DeleteFilter(_ context.Context, keyword string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.filters[keyword]; !ok {
		return false, nil
	}
	delete(b.filters, keyword)
	return true, b.writeFile(filtersFile, b.filters)
}

func (b *FileBackend) UpsertUser(_ context.Context, id int64, profile directoryDomain.UserProfile) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	user, ok := b.users[id]
	if !ok {
		user = &directoryDomain.UserRecord{ID: id, JoinDate: now}
		b.users[id] = user
	}
	user.FirstName = profile.FirstName
	user.Username = profile.Username
	user.LastSeen = now
	return b.writeFile(usersFile, b.users)
}

func (b *FileBackend) User(_ context.Context, id int64) (*directoryDomain.UserRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	user, ok := b.users[id]
	if !ok {
		return nil, sharedErrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (b *FileBackend) UserIDs(_ context.Context) ([]int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := lo.Keys(b.users)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (b *FileBackend) RemoveUser(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[id]; !ok {
		return nil
	}
	delete(b.users, id)
	return b.writeFile(usersFile, b.users)
}

func (b *FileBackend) IncrementUserSearches(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.users[id]
	if !ok {
		return nil
	}
	user.SearchCount++
	return b.writeFile(usersFile, b.users)
}

func (b *FileBackend) UpsertGroup(_ context.Context, id int64, profile directoryDomain.GroupProfile) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	group, ok := b.groups[id]
	if !ok {
		group = &directoryDomain.GroupRecord{ID: id, JoinDate: now}
		b.groups[id] = group
	}
	group.Title = profile.Title
	group.Username = profile.Username
	group.MemberCount = profile.MemberCount
	group.LastActive = now
	return b.writeFile(groupsFile, b.groups)
}

func (b *FileBackend) GroupIDs(_ context.Context) ([]int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := lo.Keys(b.groups)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (b *FileBackend) IncrementCounter(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counters[name]++
	return b.writeStats()
}

func (b *FileBackend) Counters(_ context.Context) (map[string]int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]int64, len(b.counters))
	for name, value := range b.counters {
		out[name] = value
	}
	return out, nil
}

func (b *FileBackend) StartedAt() time.Time { return b.startedAt }

func (b *FileBackend) Name() string { return "file" }

func (b *FileBackend) Close(context.Context) error { return nil }
