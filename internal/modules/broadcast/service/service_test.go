package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filterbotio/autofilter-bot/internal/delivery"
	"github.com/filterbotio/autofilter-bot/internal/modules/broadcast/domain"
	directoryDomain "github.com/filterbotio/autofilter-bot/internal/modules/directory/domain"
	directoryService "github.com/filterbotio/autofilter-bot/internal/modules/directory/service"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
	"github.com/filterbotio/autofilter-bot/internal/storage"
)

var source = delivery.Location{ChatID: 99, MessageID: 5}

// fakeCourier records targets and pops one scripted error per call.
type fakeCourier struct {
	calls   int
	targets []int64
	errs    []error
}

func (f *fakeCourier) CopyMessage(_ context.Context, toChatID int64, _ delivery.Location) error {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.targets = append(f.targets, toChatID)
	return nil
}

func (f *fakeCourier) SendText(context.Context, int64, string) error { return nil }

func (f *fakeCourier) MemberCount(context.Context, int64) int { return 0 }

type fixture struct {
	broadcaster *Service
	directory   *directoryService.Service
	backend     *storage.FileBackend
	courier     *fakeCourier
}

func newFixture(t *testing.T, userIDs ...int64) *fixture {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	directory := directoryService.New(backend)
	for _, id := range userIDs {
		require.NoError(t, directory.RegisterUser(context.Background(), id, directoryDomain.UserProfile{FirstName: "u"}))
	}

	courier := &fakeCourier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		broadcaster: New(directory, courier, logger, WithSendDelay(0)),
		directory:   directory,
		backend:     backend,
		courier:     courier,
	}
}

func TestRun_RejectsMissingSource(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()

	report, err := f.broadcaster.Run(ctx, delivery.Location{}, nil)
	require.ErrorIs(t, err, sharedErrors.ErrNoBroadcastSource)
	assert.Nil(t, report)
	assert.Zero(t, f.courier.calls)

	counters, err := f.backend.Counters(ctx)
	require.NoError(t, err)
	assert.Zero(t, counters["total_broadcasts"])
}

func TestRun_DeliversToEveryUser(t *testing.T) {
	f := newFixture(t, 3, 1, 2)
	ctx := context.Background()

	report, err := f.broadcaster.Run(ctx, source, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Success)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []int64{1, 2, 3}, f.courier.targets)

	counters, err := f.backend.Counters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counters["total_broadcasts"])
}

func TestRun_RemovesUnreachableUsers(t *testing.T) {
	f := newFixture(t, 1, 2, 3)
	ctx := context.Background()
	f.courier.errs = []error{nil, delivery.ErrRecipientUnreachable}

	report, err := f.broadcaster.Run(ctx, source, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Success)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Removed)

	ids, err := f.directory.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestRun_RetriesSameUserAfterRateLimit(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	f.courier.errs = []error{&delivery.RateLimitedError{RetryAfter: time.Millisecond}}

	report, err := f.broadcaster.Run(ctx, source, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, f.courier.calls)
	assert.Equal(t, 2, report.Success)
	assert.Equal(t, []int64{1, 2}, f.courier.targets)
}

func TestRun_CountsOtherFailuresAndKeepsUser(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	f.courier.errs = []error{errors.New("peer flood")}

	report, err := f.broadcaster.Run(ctx, source, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Success)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Removed)

	ids, err := f.directory.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestRun_ReportsProgress(t *testing.T) {
	f := newFixture(t, 1, 2, 3)
	ctx := context.Background()

	var seen []domain.Progress
	_, err := f.broadcaster.Run(ctx, source, func(p domain.Progress) {
		seen = append(seen, p)
	})
	require.NoError(t, err)

	// Fewer targets than update slots means one update per target.
	require.Len(t, seen, 3)
	last := seen[len(seen)-1]
	assert.Equal(t, 3, last.Done)
	assert.Equal(t, 3, last.Total)
	assert.InDelta(t, 100.0, last.Percent(), 0.01)
}

func TestRun_EmptyDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	called := false
	report, err := f.broadcaster.Run(ctx, source, func(domain.Progress) { called = true })
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.SuccessRate())
	assert.False(t, called)
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t, 1, 2, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.broadcaster.Run(ctx, source, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Less(t, report.Success+report.Failed, 3)
}
