package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"aurora/web/internal/store"
)

func TestNewsSeedAndCreate(t *testing.T) {
	t.Parallel()

	recordStore := store.NewMemoryStore()
	svc := NewNewsService(recordStore)
	ctx := context.Background()

	items, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Winter Event Now Live!", items[0].Title)
	require.Equal(t, "Server Update 1.20.4", items[1].Title)

	// Second startup over the same store keeps exactly the two seeds.
	again := NewNewsService(recordStore)
	items, err = again.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	created, err := again.Create(ctx, NewsInput{
		Title:    "Summer Build Contest",
		Content:  "Submit your best builds for a chance to win MVP+.",
		Category: "Event",
	})
	require.NoError(t, err)
	require.True(t, created.Published)
	require.NotEmpty(t, created.Date)

	items, err = again.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, created, items[2])
}

func TestNewsSeedingRetriesAfterStoreError(t *testing.T) {
	t.Parallel()

	svc := NewNewsService(&flakyStore{RecordStore: store.NewMemoryStore(), failGets: 1})
	ctx := context.Background()

	_, err := svc.List(ctx, false)
	require.Error(t, err)

	items, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestNewsUpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc := NewNewsService(store.NewMemoryStore())
	ctx := context.Background()

	unpublished := false
	item, err := svc.Update(ctx, "seed-news-1", NewsInput{Title: "Winter Event Extended!"}, &unpublished)
	require.NoError(t, err)
	require.Equal(t, "Winter Event Extended!", item.Title)
	require.False(t, item.Published)

	published, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)

	require.NoError(t, svc.Delete(ctx, "seed-news-2"))
	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.ErrorIs(t, svc.Delete(ctx, "seed-news-2"), ErrNewsNotFound)

	_, err = svc.Update(ctx, "missing", NewsInput{Title: "x"}, nil)
	require.ErrorIs(t, err, ErrNewsNotFound)
}
