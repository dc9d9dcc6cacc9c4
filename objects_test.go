package jsonstore

import (
	"context"
	"testing"

	"github.com/poiesic/jsonstore/codec"
	"github.com/poiesic/jsonstore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

func TestItemFor(t *testing.T) {
	item, err := ItemFor(widget{ID: "{a-b}", Size: 3}, "{a-b}", "widget")
	require.NoError(t, err)

	assert.Equal(t, "ab", item.Path)
	assert.Equal(t, "ab", item.FileName)
	assert.Equal(t, "widget", item.TypeName)
	assert.JSONEq(t, `{"id":"{a-b}","size":3}`, item.Content)

	_, err = ItemFor(widget{}, "", "widget")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = ItemFor(nil, "x", "widget")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = ItemFor(make(chan int), "x", "widget")
	assert.ErrorIs(t, err, codec.ErrSerializationFailed)
}

func TestInsertAndLoadObjects(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, WithItemType("widget"))

	require.NoError(t, Insert(ctx, m, "widget", "w1", widget{ID: "w1", Size: 1}))
	require.NoError(t, Insert(ctx, m, "widget", "w2", widget{ID: "w2", Size: 2}))
	require.NoError(t, Insert(ctx, m, "widget", "w1", widget{ID: "w1", Size: 10}))

	widgets, err := LoadObjects[widget](ctx, m, "widget")
	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: "w1", Size: 10}, {ID: "w2", Size: 2}}, widgets)

	// Same result through the cache
	require.NoError(t, m.EnableCache(ctx))
	cached, err := LoadObjects[widget](ctx, m, "widget")
	require.NoError(t, err)
	assert.Equal(t, widgets, cached)
}

func TestLoadObjects_DecodeFailure(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	require.NoError(t, m.Save(ctx, "widget", []*core.Item{{Path: "broken", Content: "{not json"}}))

	_, err := LoadObjects[widget](ctx, m, "widget")
	assert.ErrorIs(t, err, codec.ErrSerializationFailed)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadObjects_Empty(t *testing.T) {
	m, _ := newTestManager(t)

	widgets, err := LoadObjects[widget](context.Background(), m, "widget")
	require.NoError(t, err)
	assert.Empty(t, widgets)
}
