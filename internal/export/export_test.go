package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ampere207/hyper-vault/internal/schema"
)

func TestTableToXLSXWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	columns := []string{"id", "name"}
	rows := []schema.Row{
		{"id": "1", "name": "Ann"},
		{"id": "2", "name": "Bob"},
	}

	require.NoError(t, TableToXLSX(path, columns, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", a1)

	b1, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "name", b1)

	a2, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", a2)

	b3, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Bob", b3)
}

func TestTableToXLSXWithNoRowsWritesOnlyHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, TableToXLSX(path, []string{"id"}, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", v)
}

func TestSortedRowIDsOrdersAscending(t *testing.T) {
	ids := SortedRowIDs(map[int]schema.Row{
		3: {"id": "3"},
		1: {"id": "1"},
		2: {"id": "2"},
	})
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestSortedRowIDsEmptyMap(t *testing.T) {
	assert.Empty(t, SortedRowIDs(nil))
}
