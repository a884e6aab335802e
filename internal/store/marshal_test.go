package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalParams_NilIsEmptyObject(t *testing.T) {
	got, err := marshalParams(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestMarshalParams_SortedKeys(t *testing.T) {
	got, err := marshalParams(map[string]any{"name": "Steve", "age": 42, "active": true})
	require.NoError(t, err)
	assert.Equal(t, `{"active":true,"age":42,"name":"Steve"}`, got)
}

func TestMarshalParams_RejectsNaN(t *testing.T) {
	nan := 0.0
	_, err := marshalParams(map[string]any{"x": nan / nan})
	require.Error(t, err)
}

func TestUnmarshalParams_Numbers(t *testing.T) {
	got, err := unmarshalParams(`{"big":9007199254740993,"ratio":0.5,"tags":[1,"a"],"nested":{"n":7}}`)
	require.NoError(t, err)

	assert.Equal(t, int64(9007199254740993), got["big"])
	assert.Equal(t, 0.5, got["ratio"])
	assert.Equal(t, []any{int64(1), "a"}, got["tags"])
	assert.Equal(t, map[string]any{"n": int64(7)}, got["nested"])
}

func TestUnmarshalParams_Empty(t *testing.T) {
	for _, in := range []string{"", "{}"} {
		got, err := unmarshalParams(in)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func TestUnmarshalParams_Invalid(t *testing.T) {
	_, err := unmarshalParams(`{"x":`)
	require.Error(t, err)
}
