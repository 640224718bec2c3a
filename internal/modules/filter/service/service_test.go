package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filterbotio/autofilter-bot/internal/modules/filter/domain"
	sharedErrors "github.com/filterbotio/autofilter-bot/internal/shared/errors"
	"github.com/filterbotio/autofilter-bot/internal/storage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return New(backend)
}

func TestAdd_CanonicalizesKeyword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	stored, err := svc.Add(ctx, "  Naruto Shippuden ", domain.Payload{ChatID: 1, MessageID: 10, Kind: domain.MediaKindVideo})
	require.NoError(t, err)
	assert.Equal(t, "naruto shippuden", stored)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "naruto shippuden", all[0].Keyword)
	assert.Equal(t, 1, all[0].Count)
}

func TestAdd_RejectsEmptyKeyword(t *testing.T) {
	svc := newService(t)

	_, err := svc.Add(context.Background(), "   ", domain.Payload{ChatID: 1, MessageID: 10})
	require.ErrorIs(t, err, sharedErrors.ErrEmptyKeyword)
}

func TestAdd_StampsAddedAt(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "bleach", domain.Payload{ChatID: 1, MessageID: 10})
	require.NoError(t, err)

	filters, err := svc.backend.Filters(ctx)
	require.NoError(t, err)
	require.Len(t, filters["bleach"], 1)
	assert.False(t, filters["bleach"][0].AddedAt.IsZero())
}

func TestDelete_MatchesAnyCase(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "naruto", domain.Payload{ChatID: 1, MessageID: 10})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, "NARUTO")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, "naruto")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAll_SortedByKeyword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, keyword := range []string{"zelda", "anime", "movie", "anime"} {
		_, err := svc.Add(ctx, keyword, domain.Payload{ChatID: 1, MessageID: 10})
		require.NoError(t, err)
	}

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []KeywordCount{
		{Keyword: "anime", Count: 2},
		{Keyword: "movie", Count: 1},
		{Keyword: "zelda", Count: 1},
	}, all)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, keyword := range []string{"naruto", "naruto shippuden", "bleach", "boruto"} {
		_, err := svc.Add(ctx, keyword, domain.Payload{ChatID: 1, MessageID: 10})
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, " NARUTO ")
	require.NoError(t, err)
	assert.Equal(t, []KeywordCount{
		{Keyword: "naruto", Count: 1},
		{Keyword: "naruto shippuden", Count: 1},
	}, found)

	found, err = svc.Search(ctx, "ruto")
	require.NoError(t, err)
	require.Len(t, found, 3)

	found, err = svc.Search(ctx, "dragon")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSearch_RejectsEmptyQuery(t *testing.T) {
	svc := newService(t)

	_, err := svc.Search(context.Background(), "  ")
	require.ErrorIs(t, err, sharedErrors.ErrEmptyKeyword)
}
