package sqlfront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectWildcard(t *testing.T) {
	stmt, err := Parse("SELECT * FROM users")
	require.NoError(t, err)
	sel, ok := stmt.(*SelectStatement)
	require.True(t, ok)
	assert.Equal(t, "users", sel.Table)
	assert.Equal(t, []string{"*"}, sel.Projection)
	assert.Nil(t, sel.Where)
}

func TestParseSelectWithProjectionAndWhere(t *testing.T) {
	stmt, err := Parse("select id, name from users where age >= '30'")
	require.NoError(t, err)
	sel := stmt.(*SelectStatement)
	assert.Equal(t, []string{"id", "name"}, sel.Projection)
	require.NotNil(t, sel.Where)
	assert.Equal(t, "age", sel.Where.Column)
	assert.Equal(t, ">=", sel.Where.Operator)
	assert.Equal(t, "30", sel.Where.Value)
}

func TestParseInsertWithExplicitColumns(t *testing.T) {
	stmt, err := Parse("INSERT INTO users (id, name, age) VALUES ('1', 'Ann', '25')")
	require.NoError(t, err)
	ins := stmt.(*InsertStatement)
	assert.Equal(t, []string{"id", "name", "age"}, ins.Columns)
	assert.Equal(t, []string{"1", "Ann", "25"}, ins.Values)
}

func TestParseInsertPositional(t *testing.T) {
	stmt, err := Parse("INSERT INTO users VALUES ('1', 'Ann', '25')")
	require.NoError(t, err)
	ins := stmt.(*InsertStatement)
	assert.Nil(t, ins.Columns)
	assert.Equal(t, []string{"1", "Ann", "25"}, ins.Values)
}

func TestParseUpdateWithMultipleAssignments(t *testing.T) {
	stmt, err := Parse("UPDATE users SET age = '99', name = 'X' WHERE id = '1'")
	require.NoError(t, err)
	upd := stmt.(*UpdateStatement)
	require.Len(t, upd.Assignments, 2)
	assert.Equal(t, "age", upd.Assignments[0].Column)
	assert.Equal(t, "99", upd.Assignments[0].Value)
	require.NotNil(t, upd.Where)
}

func TestParseDeleteWithoutWhere(t *testing.T) {
	stmt, err := Parse("DELETE FROM users")
	require.NoError(t, err)
	del := stmt.(*DeleteStatement)
	assert.Equal(t, "users", del.Table)
	assert.Nil(t, del.Where)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("SELECT * FROM users WHERE id = '1' garbage")
	assert.Error(t, err)
}

func TestParseRejectsUnknownKeyword(t *testing.T) {
	_, err := Parse("FOO BAR")
	assert.Error(t, err)
}

func TestOperatorTokenizationLongestMatchFirst(t *testing.T) {
	cases := []struct {
		input string
		op    string
	}{
		{"SELECT * FROM t WHERE a >= '1'", ">="},
		{"SELECT * FROM t WHERE a <= '1'", "<="},
		{"SELECT * FROM t WHERE a != '1'", "!="},
		{"SELECT * FROM t WHERE a <> '1'", "<>"},
		{"SELECT * FROM t WHERE a > '1'", ">"},
		{"SELECT * FROM t WHERE a < '1'", "<"},
		{"SELECT * FROM t WHERE a = '1'", "="},
	}
	for _, c := range cases {
		stmt, err := Parse(c.input)
		require.NoError(t, err, c.input)
		sel := stmt.(*SelectStatement)
		assert.Equal(t, c.op, sel.Where.Operator, c.input)
	}
}

func TestParseIsCaseInsensitiveOnKeywords(t *testing.T) {
	_, err := Parse("SeLeCt * FrOm users WhErE id = '1'")
	assert.NoError(t, err)
}

func TestParseEmptyInputIsError(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
}
