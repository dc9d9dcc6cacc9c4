package codec

import (
	"testing"

	"github.com/poiesic/jsonstore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string   `json:"id"`
	N    int      `json:"n"`
	Tags []string `json:"tags,omitempty"`
}

func TestSerializeDeserialize(t *testing.T) {
	doc, err := Serialize(widget{ID: "w1", N: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"w1","n":1}`, doc)

	w, err := Deserialize[widget](doc)
	require.NoError(t, err)
	assert.Equal(t, widget{ID: "w1", N: 1}, w)

	s, err := Serialize("test")
	require.NoError(t, err)
	assert.Equal(t, `"test"`, s)
}

func TestSerialize_Errors(t *testing.T) {
	_, err := Serialize(nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Serialize(make(chan int))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestDeserialize_Errors(t *testing.T) {
	_, err := Deserialize[widget]("")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = Deserialize[widget]("{not json")
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIndent(t *testing.T) {
	out, err := Indent(`{"n":1}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"n\": 1\n}", out)

	_, err = Indent("nope")
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
