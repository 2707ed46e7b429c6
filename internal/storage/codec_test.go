package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampere207/hyper-vault/internal/schema"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	e := New()
	require.NoError(t, e.CreateTable("users", []string{"id", "name", "age"}, "id"))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "2", "name": "Bob", "age": "30"}))
	_, err := e.DeleteRows("users", func(r schema.Row) bool { return r.Get("id") == "1" })
	require.NoError(t, err)

	data, err := e.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, e.meta, restored.meta)
	assert.Equal(t, len(e.tables), len(restored.tables))

	original, _ := e.Table("users")
	again, ok := restored.Table("users")
	require.True(t, ok)
	assert.Equal(t, original.Columns, again.Columns)
	assert.Equal(t, original.PrimaryKey, again.PrimaryKey)
	assert.Equal(t, original.NextRowID, again.NextRowID)
	assert.Equal(t, original.Rows, again.Rows)
}

func TestSerializeTwiceIsByteIdentical(t *testing.T) {
	e := New()
	require.NoError(t, e.CreateTable("t", []string{"a", "b"}, "a"))
	require.NoError(t, e.InsertRow("t", schema.Row{"a": "1", "b": "x"}))

	data, err := e.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(data)
	require.NoError(t, err)

	data2, err := restored.Serialize()
	require.NoError(t, err)

	assert.Equal(t, data, data2)
}

func TestDeserializeMalformedDataReturnsIOError(t *testing.T) {
	_, err := Deserialize([]byte{0x01, 0x02})
	require.Error(t, err)
}
