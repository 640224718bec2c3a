package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

func newTestBackend(t *testing.T) (*FileBackend, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	return backend, dir
}

func testPayload(messageID int) filterDomain.Payload {
	return filterDomain.Payload{
		ChatID:    -100200300,
		MessageID: messageID,
		Kind:      filterDomain.MediaKindPhoto,
		AddedBy:   42,
		AddedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewFileBackend_RejectsCorruptState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filters.json"), []byte("{not json"), 0644))

	_, err := NewFileBackend(dir)
	require.Error(t, err)
}

func TestFileBackend_FiltersSurviveReopen(t *testing.T) {
	backend, dir := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.AddFilterPayload(ctx, "naruto", testPayload(1)))
	require.NoError(t, backend.AddFilterPayload(ctx, "naruto", testPayload(2)))
	require.NoError(t, backend.AddFilterPayload(ctx, "bleach", testPayload(3)))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)

	filters, err := reopened.Filters(ctx)
	require.NoError(t, err)
	require.Len(t, filters, 2)
	require.Len(t, filters["naruto"], 2)
	assert.Equal(t, testPayload(1), filters["naruto"][0])
	assert.Equal(t, testPayload(2), filters["naruto"][1])
	assert.Equal(t, []filterDomain.Payload{testPayload(3)}, filters["bleach"])
}

func TestFileBackend_FiltersReturnsCopies(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.AddFilterPayload(ctx, "one piece", testPayload(1)))

	filters, err := backend.Filters(ctx)
	require.NoError(t, err)
	filters["one piece"][0].MessageID = 999
	delete(filters, "one piece")

	again, err := backend.Filters(ctx)
	require.NoError(t, err)
	require.Len(t, again["one piece"], 1)
	assert.Equal(t, 1, again["one piece"][0].MessageID)
}

func TestFileBackend_DeleteFilter(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.AddFilterPayload(ctx, "naruto", testPayload(1)))

	removed, err := backend.DeleteFilter(ctx, "naruto")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = backend.DeleteFilter(ctx, "naruto")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFileBackend_UserLifecycle(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.UpsertUser(ctx, 7, directoryDomain.UserProfile{FirstName: "Ada", Username: "ada"}))

	user, err := backend.User(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.False(t, user.JoinDate.IsZero())
	joined := user.JoinDate

	require.NoError(t, backend.IncrementUserSearches(ctx, 7))
	require.NoError(t, backend.IncrementUserSearches(ctx, 7))

	// A returning user keeps their history while the profile refreshes.
	require.NoError(t, backend.UpsertUser(ctx, 7, directoryDomain.UserProfile{FirstName: "Ada L.", Username: "lovelace"}))

	user, err = backend.User(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", user.FirstName)
	assert.Equal(t, "lovelace", user.Username)
	assert.Equal(t, int64(2), user.SearchCount)
	assert.Equal(t, joined, user.JoinDate)

	require.NoError(t, backend.RemoveUser(ctx, 7))
	require.NoError(t, backend.RemoveUser(ctx, 7))

	_, err = backend.User(ctx, 7)
	require.ErrorIs(t, err, sharedErrors.ErrUserNotFound)
}

func TestFileBackend_IncrementUnknownUserIsNoop(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.IncrementUserSearches(ctx, 404))

	ids, err := backend.UserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileBackend_UserIDsSorted(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		require.NoError(t, backend.UpsertUser(ctx, id, directoryDomain.UserProfile{FirstName: "u"}))
	}

	ids, err := backend.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, ids)
}

func TestFileBackend_GroupLifecycle(t *testing.T) {
	backend, dir := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.UpsertGroup(ctx, -100, directoryDomain.GroupProfile{Title: "Anime Club", MemberCount: 12}))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, reopened.UpsertGroup(ctx, -200, directoryDomain.GroupProfile{Title: "Movies"}))

	ids, err := reopened.GroupIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{-200, -100}, ids)
}

func TestFileBackend_CountersSurviveReopen(t *testing.T) {
	backend, dir := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.IncrementCounter(ctx, "total_searches"))
	require.NoError(t, backend.IncrementCounter(ctx, "total_searches"))
	require.NoError(t, backend.IncrementCounter(ctx, "total_broadcasts"))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)

	counters, err := reopened.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters["total_searches"])
	assert.Equal(t, int64(1), counters["total_broadcasts"])
}

func TestFileBackend_ConcurrentIncrements(t *testing.T) {
	backend, _ := newTestBackend(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				assert.NoError(t, backend.IncrementCounter(ctx, "total_searches"))
			}
		}()
	}
	wg.Wait()

	counters, err := backend.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), counters["total_searches"])
}

func TestFileBackend_StartedAtIgnoresPersistedValue(t *testing.T) {
	backend, dir := newTestBackend(t)
	require.NoError(t, backend.IncrementCounter(context.Background(), "total_searches"))

	// The stats file now carries the first process's start time; a new
	// process must report its own.
	time.Sleep(10 * time.Millisecond)
	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)
	assert.True(t, reopened.StartedAt().After(backend.StartedAt()))
}
