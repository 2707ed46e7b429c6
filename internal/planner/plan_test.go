package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampere207/hyper-vault/internal/applog"
	"github.com/ampere207/hyper-vault/internal/sqlfront"
)

func mustParse(t *testing.T, sql string) sqlfront.Statement {
	t.Helper()
	stmt, err := sqlfront.Parse(sql)
	require.NoError(t, err)
	return stmt
}

func TestLowerSelectWildcardSkipsProjectionStep(t *testing.T) {
	plan, err := Lower(mustParse(t, "SELECT * FROM users"))
	require.NoError(t, err)
	assert.Equal(t, QuerySelect, plan.QueryType)
	for _, step := range plan.ExecutionSteps {
		assert.NotEqual(t, StepProjectColumns, step.Kind)
	}
}

func TestLowerSelectWithWhereAddsFilterStep(t *testing.T) {
	plan, err := Lower(mustParse(t, "SELECT id FROM users WHERE age = '30'"))
	require.NoError(t, err)
	var sawFilter, sawProject bool
	for _, step := range plan.ExecutionSteps {
		if step.Kind == StepFilterRows {
			sawFilter = true
			assert.Equal(t, 0.1, step.Selectivity)
		}
		if step.Kind == StepProjectColumns {
			sawProject = true
		}
	}
	assert.True(t, sawFilter)
	assert.True(t, sawProject)
}

func TestSelectivityForOperator(t *testing.T) {
	assert.Equal(t, 0.1, selectivityForOperator("="))
	assert.Equal(t, 0.3, selectivityForOperator(">"))
	assert.Equal(t, 0.3, selectivityForOperator("<"))
	assert.Equal(t, 0.4, selectivityForOperator(">="))
	assert.Equal(t, 0.4, selectivityForOperator("<="))
	assert.Equal(t, 0.9, selectivityForOperator("!="))
	assert.Equal(t, 0.9, selectivityForOperator("<>"))
}

func TestLowerInsertUpdateDelete(t *testing.T) {
	ins, err := Lower(mustParse(t, "INSERT INTO users (id) VALUES ('1')"))
	require.NoError(t, err)
	assert.Equal(t, QueryInsert, ins.QueryType)
	assert.Equal(t, StepInsertRow, ins.ExecutionSteps[0].Kind)

	upd, err := Lower(mustParse(t, "UPDATE users SET id = '2' WHERE id = '1'"))
	require.NoError(t, err)
	assert.Equal(t, QueryUpdate, upd.QueryType)
	assert.Equal(t, StepUpdateRows, upd.ExecutionSteps[0].Kind)

	del, err := Lower(mustParse(t, "DELETE FROM users WHERE id = '1'"))
	require.NoError(t, err)
	assert.Equal(t, QueryDelete, del.QueryType)
	assert.Equal(t, StepDeleteRows, del.ExecutionSteps[0].Kind)
}

func TestValidateRejectsUnknownTableAndColumn(t *testing.T) {
	plan, err := Lower(mustParse(t, "SELECT id FROM users WHERE age = '1'"))
	require.NoError(t, err)

	err = Validate(plan, false, nil)
	require.Error(t, err)

	err = Validate(plan, true, []string{"name"})
	require.Error(t, err)

	err = Validate(plan, true, []string{"id", "age"})
	require.NoError(t, err)
}

func TestValidateAllowsWildcardProjection(t *testing.T) {
	plan, err := Lower(mustParse(t, "SELECT * FROM users"))
	require.NoError(t, err)
	assert.NoError(t, Validate(plan, true, []string{"id"}))
}

func TestClassifyComplexity(t *testing.T) {
	simple, err := Lower(mustParse(t, "SELECT * FROM t"))
	require.NoError(t, err)
	_, complexity := Classify(simple)
	assert.Equal(t, ComplexitySimple, complexity)

	update, err := Lower(mustParse(t, "UPDATE t SET a = '1' WHERE b = '2'"))
	require.NoError(t, err)
	_, complexity = Classify(update)
	assert.Equal(t, ComplexityMedium, complexity)
}

func TestPlanCacheHitMissAndExpiry(t *testing.T) {
	cache := NewPlanCache(10*time.Millisecond, 2, applog.NoOp())
	plan, err := Lower(mustParse(t, "SELECT * FROM t"))
	require.NoError(t, err)

	_, ok := cache.Get("SELECT * FROM t")
	assert.False(t, ok)

	cache.Set("SELECT * FROM t", plan)
	got, ok := cache.Get("select * from t")
	assert.True(t, ok)
	assert.Same(t, plan, got)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get("SELECT * FROM t")
	assert.False(t, ok)
}

func TestPlanCacheDisabledWhenMaxSizeZero(t *testing.T) {
	cache := NewPlanCache(time.Minute, 0, applog.NoOp())
	plan, _ := Lower(mustParse(t, "SELECT * FROM t"))
	cache.Set("SELECT * FROM t", plan)
	_, ok := cache.Get("SELECT * FROM t")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestPlanCacheEvictsSoonestExpiry(t *testing.T) {
	cache := NewPlanCache(time.Hour, 1, applog.NoOp())
	p1, _ := Lower(mustParse(t, "SELECT * FROM a"))
	p2, _ := Lower(mustParse(t, "SELECT * FROM b"))

	cache.Set("SELECT * FROM a", p1)
	cache.Set("SELECT * FROM b", p2)

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get("SELECT * FROM a")
	assert.False(t, ok)
	_, ok = cache.Get("SELECT * FROM b")
	assert.True(t, ok)
}

func TestPlannerPlanUsesCacheAndRecordsStats(t *testing.T) {
	p := New(NewPlanCache(time.Minute, 8, applog.NoOp()), applog.NoOp())
	stmt := mustParse(t, "SELECT * FROM t")

	plan1, err := p.Plan("SELECT * FROM t", stmt)
	require.NoError(t, err)
	plan2, err := p.Plan("select * from t", stmt)
	require.NoError(t, err)
	assert.Same(t, plan1, plan2)

	p.RecordOutcome(QuerySelect, time.Millisecond, false)
	p.RecordOutcome(QueryInsert, time.Millisecond, true)

	snap := p.Stats()
	assert.Equal(t, uint64(2), snap.Total)
	assert.Equal(t, uint64(1), snap.SelectCount)
	assert.Equal(t, uint64(1), snap.InsertCount)
	assert.Equal(t, uint64(1), snap.Failed)

	p.ResetStats()
	assert.Equal(t, uint64(0), p.Stats().Total)
}

func TestPlannerWithNilCacheStillWorks(t *testing.T) {
	p := New(nil, applog.NoOp())
	stmt := mustParse(t, "SELECT * FROM t")
	plan, err := p.Plan("SELECT * FROM t", stmt)
	require.NoError(t, err)
	assert.Equal(t, QuerySelect, plan.QueryType)
}
