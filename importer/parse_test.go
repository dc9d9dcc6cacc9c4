package importer

import (
	"errors"
	"testing"

	"github.com/poiesic/jsonstore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("ids from path", func(t *testing.T) {
		items, err := Parse(`[{"id":"w1","n":1},{"id":"{w-2}","n":2}]`, "widget", "id")
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "w1", items[0].Path)
		assert.Equal(t, `{"id":"w1","n":1}`, items[0].Content)
		assert.Equal(t, "widget", items[0].TypeName)
		assert.Equal(t, "w2", items[1].Path)
	})

	t.Run("nested id path", func(t *testing.T) {
		items, err := Parse(`[{"meta":{"key":"k1"}}]`, "widget", "meta.key")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "k1", items[0].Path)
	})

	t.Run("content hash when id is missing", func(t *testing.T) {
		items, err := Parse(`[{"n":1},{"id":"---","n":2}]`, "widget", "id")
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, core.IDFromContent(`{"n":1}`), items[0].Path)
		assert.Equal(t, core.IDFromContent(`{"id":"---","n":2}`), items[1].Path)
	})

	t.Run("content hash without path", func(t *testing.T) {
		items, err := Parse(`[1, "two", {"three":3}]`, "number", "")
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, `"two"`, items[1].Content)
		assert.Equal(t, core.IDFromContent("1"), items[0].Path)
	})

	t.Run("empty array", func(t *testing.T) {
		items, err := Parse(`[]`, "widget", "id")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := Parse(`{"id":1}`, "widget", "id")
		assert.ErrorIs(t, err, ErrNotArray)

		_, err = Parse(`[{"id":`, "widget", "id")
		assert.ErrorIs(t, err, ErrInvalidDocument)

		_, err = Parse(`[{}]`, "", "id")
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})
}

func TestDedup(t *testing.T) {
	items := []*core.Item{
		{Path: "a", Content: "1"},
		{Path: "b", Content: "2"},
		{Path: "a.json", Content: "3"},
	}

	kept, dropped := dedup(items)
	assert.Equal(t, 1, dropped)
	require.Len(t, kept, 2)
	assert.Equal(t, "1", kept[0].Content)
	assert.Equal(t, "2", kept[1].Content)
}

func TestForEachBatch(t *testing.T) {
	items := make([]*core.Item, 7)
	for i := range items {
		items[i] = &core.Item{Path: string(rune('a' + i))}
	}

	var sizes []int
	err := forEachBatch(items, 3, func(batch []*core.Item) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, sizes)

	stop := errors.New("stop")
	calls := 0
	err = forEachBatch(items, 2, func([]*core.Item) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
