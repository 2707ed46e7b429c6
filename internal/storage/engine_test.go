package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/schema"
)

func newUsersEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.CreateTable("users", []string{"id", "name", "age"}, "id"))
	return e
}

func TestCreateTableRejectsDuplicateName(t *testing.T) {
	e := newUsersEngine(t)
	err := e.CreateTable("users", []string{"id"}, "id")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTableAlreadyExists, apperr.GetCode(err))
}

func TestCreateTableRejectsEmptySchema(t *testing.T) {
	e := New()
	err := e.CreateTable("t", nil, "")
	assert.Equal(t, apperr.CodeInvalidSchema, apperr.GetCode(err))
}

func TestCreateTableRejectsUnknownPrimaryKey(t *testing.T) {
	e := New()
	err := e.CreateTable("t", []string{"a", "b"}, "c")
	assert.Equal(t, apperr.CodeInvalidSchema, apperr.GetCode(err))
}

func TestInsertRowAssignsDenseRowIDs(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "2", "name": "Bob", "age": "30"}))

	tbl, _ := e.Table("users")
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, "Ann", tbl.Rows[0].Get("name"))
	assert.Equal(t, "Bob", tbl.Rows[1].Get("name"))
}

func TestInsertRowRejectsDuplicatePrimaryKey(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))

	err := e.InsertRow("users", schema.Row{"id": "1", "name": "Bob", "age": "40"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodePrimaryKeyViolation, apperr.GetCode(err))

	tbl, _ := e.Table("users")
	assert.Equal(t, 1, tbl.RowCount())
}

func TestInsertRowRejectsMissingPrimaryKey(t *testing.T) {
	e := newUsersEngine(t)
	err := e.InsertRow("users", schema.Row{"name": "Ann"})
	assert.Equal(t, apperr.CodeMissingPrimaryKey, apperr.GetCode(err))
}

func TestInsertRowRejectsUnknownColumn(t *testing.T) {
	e := newUsersEngine(t)
	err := e.InsertRow("users", schema.Row{"id": "1", "nonexistent": "x"})
	assert.Equal(t, apperr.CodeColumnNotFound, apperr.GetCode(err))
}

func TestUpdateRowsWithoutWhereUpdatesAll(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "2", "name": "Bob", "age": "30"}))

	n, err := e.UpdateRows("users", map[string]string{"age": "99"}, AlwaysTrue)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tbl, _ := e.Table("users")
	for _, row := range tbl.Rows {
		assert.Equal(t, "99", row.Get("age"))
	}
}

func TestDeleteRowsWithoutWhereDeletesNothing(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))

	n, err := e.DeleteRows("users", AlwaysFalse)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	tbl, _ := e.Table("users")
	assert.Equal(t, 1, tbl.RowCount())
}

func TestUpdateRejectsPKCollisionAcrossMultipleMatches(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "2", "name": "Bob", "age": "25"}))

	predicate := func(r schema.Row) bool { return r.Get("age") == "25" }
	_, err := e.UpdateRows("users", map[string]string{"id": "9"}, predicate)
	require.Error(t, err)
	assert.Equal(t, apperr.CodePrimaryKeyViolation, apperr.GetCode(err))

	tbl, _ := e.Table("users")
	assert.Equal(t, "1", tbl.Rows[0].Get("id"))
	assert.Equal(t, "2", tbl.Rows[1].Get("id"))
}

func TestUpdateRejectsPKCollisionWithUnmatchedRow(t *testing.T) {
	e := newUsersEngine(t)
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "2", "name": "Bob", "age": "30"}))

	predicate := func(r schema.Row) bool { return r.Get("id") == "1" }
	_, err := e.UpdateRows("users", map[string]string{"id": "2"}, predicate)
	assert.Equal(t, apperr.CodePrimaryKeyViolation, apperr.GetCode(err))
}

func TestMetadataMonotonicity(t *testing.T) {
	e := newUsersEngine(t)
	before := e.Metadata()
	require.NoError(t, e.InsertRow("users", schema.Row{"id": "1", "name": "Ann", "age": "25"}))
	after := e.Metadata()

	assert.GreaterOrEqual(t, after.TotalOperations, before.TotalOperations)
	assert.GreaterOrEqual(t, after.RowsInserted, before.RowsInserted)
	assert.GreaterOrEqual(t, after.LastModified, before.CreatedAt)
}

func TestGetTableStatsOnEmptyTable(t *testing.T) {
	e := newUsersEngine(t)
	stats, err := e.GetTableStats("users")
	require.NoError(t, err)
	for _, cs := range stats.Columns {
		assert.Equal(t, 1.0, cs.Selectivity)
	}
}
