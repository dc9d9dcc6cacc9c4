package jsonstore

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/jsonstore/collection"
	"github.com/poiesic/jsonstore/core"
	"github.com/poiesic/jsonstore/storage/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func contentsOf(items []*core.Item) map[string]string {
	m := make(map[string]string, len(items))
	for _, item := range items {
		m[item.FileName] = item.Content
	}
	return m
}

func TestCache_EnableRequiresItemType(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.EnableCache(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.ErrorIs(t, err, ErrItemTypeRequired)
	assert.False(t, m.CacheEnabled())
}

func TestCache_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, WithItemType("widget"), WithClock(stepClock()))

	require.NoError(t, m.Save(ctx, "widget", []*core.Item{
		{Path: "a", Content: "A"},
		{Path: "b", Content: "B"},
	}))

	t.Run("enable loads a snapshot matching storage", func(t *testing.T) {
		require.NoError(t, m.EnableCache(ctx))
		assert.True(t, m.CacheEnabled())
		assert.False(t, m.CacheLastLoaded().IsZero())

		direct, err := m.Load(ctx, "widget")
		require.NoError(t, err)
		assert.Equal(t, contentsOf(direct), contentsOf(m.CachedItems()))
	})

	t.Run("disable clears the snapshot", func(t *testing.T) {
		m.DisableCache()
		assert.False(t, m.CacheEnabled())
		assert.Empty(t, m.CachedItems())
	})

	t.Run("flush reloads while disabled", func(t *testing.T) {
		before := m.CacheLastLoaded()
		require.NoError(t, m.FlushCache(ctx, ""))

		assert.True(t, m.CacheLastLoaded().After(before))
		assert.False(t, m.CacheEnabled(), "flush leaves the enabled state alone")
		assert.Len(t, m.CachedItems(), 2)
	})
}

func TestCache_FlushRequiresType(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.FlushCache(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	assert.True(t, m.CacheLastLoaded().IsZero())
}

func TestCache_FlushExplicitType(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	require.NoError(t, m.Save(ctx, "gadget", []*core.Item{{Path: "g", Content: "G"}}))
	require.NoError(t, m.FlushCache(ctx, "gadget"))

	assert.Equal(t, map[string]string{"g.json": "G"}, contentsOf(m.CachedItems()))
}

func TestCache_InsertRestoresState(t *testing.T) {
	ctx := context.Background()

	t.Run("enabled cache is reloaded", func(t *testing.T) {
		m, _ := newTestManager(t, WithItemType("widget"), WithClock(stepClock()))
		require.NoError(t, m.EnableCache(ctx))
		before := m.CacheLastLoaded()

		require.NoError(t, m.InsertOne(ctx, "widget", newItem(t, "w1", "1")))

		assert.True(t, m.CacheEnabled())
		assert.True(t, m.CacheLastLoaded().After(before))
		assert.Equal(t, map[string]string{"w1.json": "1"}, contentsOf(m.CachedItems()))
	})

	t.Run("disabled cache stays disabled", func(t *testing.T) {
		m, _ := newTestManager(t, WithItemType("widget"))

		_, err := m.InsertMany(ctx, "widget", []*core.Item{newItem(t, "w1", "1")}, collection.SkipExisting)
		require.NoError(t, err)

		assert.False(t, m.CacheEnabled())
		assert.Empty(t, m.CachedItems())
		assert.True(t, m.CacheLastLoaded().IsZero())
	})

	t.Run("enabled cache survives a failed insert", func(t *testing.T) {
		fs := &failingWrites{FileSystem: osfs.New(), suffix: "bad.json"}
		m, _ := newTestManager(t, WithItemType("widget"), WithFileSystem(fs))
		require.NoError(t, m.EnableCache(ctx))

		err := m.InsertOne(ctx, "widget", newItem(t, "bad", "{}"))
		require.ErrorIs(t, err, errDiskFull)
		assert.True(t, m.CacheEnabled())
	})

	t.Run("insert into another folder refreshes the cached one", func(t *testing.T) {
		m, _ := newTestManager(t, WithItemType("widget"))
		require.NoError(t, m.Save(ctx, "widget", []*core.Item{{Path: "a", Content: "A"}}))
		require.NoError(t, m.EnableCache(ctx))

		require.NoError(t, m.InsertOne(ctx, "gadget", newItem(t, "g", "G")))

		assert.True(t, m.CacheEnabled())
		assert.Equal(t, map[string]string{"a.json": "A"}, contentsOf(m.CachedItems()))
	})
}

func TestCache_ServesReads(t *testing.T) {
	ctx := context.Background()
	m, root := newTestManager(t, WithItemType("widget"))
	require.NoError(t, m.InsertOne(ctx, "widget", newItem(t, "w1", "one")))
	require.NoError(t, m.EnableCache(ctx))

	// A second manager writes behind the first one's back
	other, err := NewManager(root)
	require.NoError(t, err)
	defer other.Close()
	require.NoError(t, other.InsertOne(ctx, "widget", newItem(t, "w1", "changed")))

	item, err := m.Get(ctx, "widget", "w1")
	require.NoError(t, err)
	assert.Equal(t, "one", item.Content, "cache is stale until flushed")

	require.NoError(t, m.FlushCache(ctx, "widget"))
	item, err = m.Get(ctx, "widget", "w1")
	require.NoError(t, err)
	assert.Equal(t, "changed", item.Content)

	// Other folders always read storage
	require.NoError(t, other.InsertOne(ctx, "gadget", newItem(t, "g", "G")))
	items, err := m.Items(ctx, "gadget")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCache_SnapshotIsCopied(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, WithItemType("widget"))
	require.NoError(t, m.InsertOne(ctx, "widget", newItem(t, "w1", "one")))
	require.NoError(t, m.EnableCache(ctx))

	items := m.CachedItems()
	require.Len(t, items, 1)
	items[0].Content = "mutated"

	assert.Equal(t, "one", m.CachedItems()[0].Content)
}
