package executor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampere207/hyper-vault/internal/applog"
	"github.com/ampere207/hyper-vault/internal/persistence"
	"github.com/ampere207/hyper-vault/internal/sqlfront"
)

func newExecutor(t *testing.T) *Executor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.db")
	f, err := persistence.Open(path, applog.NoOp())
	require.NoError(t, err)
	require.NoError(t, f.CreateTable("users", []string{"id", "name", "age"}, "id"))
	return New(f)
}

func mustParse(t *testing.T, sql string) sqlfront.Statement {
	t.Helper()
	stmt, err := sqlfront.Parse(sql)
	require.NoError(t, err)
	return stmt
}

// Scenario 1: insert then select returns the inserted row.
func TestScenarioInsertThenSelect(t *testing.T) {
	e := newExecutor(t)
	_, err := e.Execute(mustParse(t, "INSERT INTO users (id,name,age) VALUES ('1','Ann','25')"))
	require.NoError(t, err)

	res, err := e.Execute(mustParse(t, "SELECT * FROM users"))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Ann", res.Rows[0].Get("name"))
}

// Scenario 2: duplicate PK insert fails, row count remains 1.
func TestScenarioDuplicatePKInsertFails(t *testing.T) {
	e := newExecutor(t)
	_, err := e.Execute(mustParse(t, "INSERT INTO users (id,name,age) VALUES ('1','Ann','25')"))
	require.NoError(t, err)

	_, err = e.Execute(mustParse(t, "INSERT INTO users (id,name,age) VALUES ('1','Bob','40')"))
	require.Error(t, err)

	res, _ := e.Execute(mustParse(t, "SELECT * FROM users"))
	assert.Len(t, res.Rows, 1)
}

// Scenario 3: select with WHERE age >= '30' returns exactly two rows.
func TestScenarioSelectWithComparisonOperator(t *testing.T) {
	e := newExecutor(t)
	ages := []string{"25", "30", "35"}
	for i, age := range ages {
		sql := "INSERT INTO users (id,name,age) VALUES ('" + string(rune('1'+i)) + "','N','" + age + "')"
		_, err := e.Execute(mustParse(t, sql))
		require.NoError(t, err)
	}

	res, err := e.Execute(mustParse(t, "SELECT id FROM users WHERE age >= '30'"))
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
	for _, row := range res.Rows {
		assert.Len(t, row, 1)
	}
}

// Scenarios 4-6: UPDATE without WHERE updates all, DELETE without WHERE is
// a no-op guardrail, DELETE with WHERE removes matching rows.
func TestScenarioUpdateAllThenGuardedDeleteThenTargetedDelete(t *testing.T) {
	e := newExecutor(t)
	for i, age := range []string{"25", "30", "35"} {
		sql := "INSERT INTO users (id,name,age) VALUES ('" + string(rune('1'+i)) + "','N','" + age + "')"
		_, err := e.Execute(mustParse(t, sql))
		require.NoError(t, err)
	}

	res, err := e.Execute(mustParse(t, "UPDATE users SET age = '99'"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Affected)

	res, err = e.Execute(mustParse(t, "DELETE FROM users"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Affected)

	sel, _ := e.Execute(mustParse(t, "SELECT * FROM users"))
	assert.Len(t, sel.Rows, 3)

	res, err = e.Execute(mustParse(t, "DELETE FROM users WHERE age = '99'"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Affected)

	sel, _ = e.Execute(mustParse(t, "SELECT * FROM users"))
	assert.Empty(t, sel.Rows)
}

// Scenario 7: predicate on a column absent from the schema/row evaluates
// false for every row, producing an empty (not an error) result.
func TestScenarioPredicateOnMissingColumnIsFalse(t *testing.T) {
	e := newExecutor(t)
	_, err := e.Execute(mustParse(t, "INSERT INTO users (id,name,age) VALUES ('1','Ann','25')"))
	require.NoError(t, err)

	res, err := e.Execute(mustParse(t, "SELECT name FROM users WHERE nonexistent = 'x'"))
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestSelectOnEmptyTableReturnsEmptyNotError(t *testing.T) {
	e := newExecutor(t)
	res, err := e.Execute(mustParse(t, "SELECT * FROM users"))
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestNumericComparisonTreatsUnparseableAsZero(t *testing.T) {
	e := newExecutor(t)
	_, err := e.Execute(mustParse(t, "INSERT INTO users (id,name,age) VALUES ('1','Ann','notanumber')"))
	require.NoError(t, err)

	res, err := e.Execute(mustParse(t, "SELECT * FROM users WHERE age < '5'"))
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1) // 0 < 5
}

func TestInsertPositionalZipsColumnsAndValues(t *testing.T) {
	e := newExecutor(t)
	_, err := e.Execute(mustParse(t, "INSERT INTO users VALUES ('1','Ann','25')"))
	require.NoError(t, err)

	res, _ := e.Execute(mustParse(t, "SELECT * FROM users"))
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Ann", res.Rows[0].Get("name"))
	assert.Equal(t, "25", res.Rows[0].Get("age"))
}
