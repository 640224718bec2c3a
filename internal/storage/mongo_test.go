package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	filterDomain "github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
)

// newMongoTestBackend needs a running server, e.g.
// TEST_MONGO_URL=mongodb://localhost:27017 go test ./internal/storage/...
func newMongoTestBackend(t *testing.T) *MongoBackend {
	t.Helper()
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL is not set")
	}

	ctx := context.Background()
	database := fmt.Sprintf("autofilter_test_%d", time.Now().UnixNano())
	backend, err := NewMongoBackend(ctx, url, database)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = backend.client.Database(database).Drop(ctx)
		_ = backend.Close(ctx)
	})
	return backend
}

func TestMongoBackend_FilterRoundTrip(t *testing.T) {
	backend := newMongoTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.AddFilterPayload(ctx, "naruto", testPayload(1)))
	require.NoError(t, backend.AddFilterPayload(ctx, "naruto", testPayload(2)))

	filters, err := backend.Filters(ctx)
	require.NoError(t, err)
	require.Len(t, filters["naruto"], 2)
	assert.Equal(t, 1, filters["naruto"][0].MessageID)
	assert.Equal(t, 2, filters["naruto"][1].MessageID)
	assert.Equal(t, filterDomain.MediaKindPhoto, filters["naruto"][0].Kind)

	removed, err := backend.DeleteFilter(ctx, "naruto")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = backend.DeleteFilter(ctx, "naruto")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMongoBackend_UserLifecycle(t *testing.T) {
	backend := newMongoTestBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.UpsertUser(ctx, 7, directoryDomain.UserProfile{FirstName: "Ada", Username: "ada"}))
	require.NoError(t, backend.IncrementUserSearches(ctx, 7))
	require.NoError(t, backend.UpsertUser(ctx, 7, directoryDomain.UserProfile{FirstName: "Ada L.", Username: "lovelace"}))

	user, err := backend.User(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", user.FirstName)
	assert.Equal(t, int64(1), user.SearchCount)
	assert.False(t, user.JoinDate.IsZero())

	require.NoError(t, backend.UpsertUser(ctx, 3, directoryDomain.UserProfile{FirstName: "Bob"}))
	ids, err := backend.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)

	require.NoError(t, backend.RemoveUser(ctx, 7))
	_, err = backend.User(ctx, 7)
	require.ErrorIs(t, err, sharedErrors.ErrUserNotFound)
}

func TestMongoBackend_Counters(t *testing.T) {
	backend := newMongoTestBackend(t)
	ctx := context.Background()

	counters, err := backend.Counters(ctx)
	require.NoError(t, err)
	assert.Empty(t, counters)

	require.NoError(t, backend.IncrementCounter(ctx, "total_searches"))
	require.NoError(t, backend.IncrementCounter(ctx, "total_searches"))
	require.NoError(t, backend.IncrementCounter(ctx, "total_broadcasts"))

	counters, err = backend.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters["total_searches"])
	assert.Equal(t, int64(1), counters["total_broadcasts"])
}
