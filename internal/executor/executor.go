// Package executor interprets a parsed statement directly against the
// storage layer (through the persistence façade) and returns rows or an
// error. It does not consume a planner.Plan to do so — the plan is a
// separate cost/diagnostic artifact (§9 O3 of the design).
package executor

import (
	"strconv"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/persistence"
	"github.com/ampere207/hyper-vault/internal/schema"
	"github.com/ampere207/hyper-vault/internal/sqlfront"
	"github.com/ampere207/hyper-vault/internal/storage"
)

// Executor runs statements against a persistence façade.
type Executor struct {
	facade *persistence.Facade
}

// New builds an Executor bound to facade.
func New(facade *persistence.Facade) *Executor {
	return &Executor{facade: facade}
}

// Execute dispatches stmt to the matching operation and returns either a
// row set (SELECT) or a row-count-bearing Result (INSERT/UPDATE/DELETE).
func (e *Executor) Execute(stmt sqlfront.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *sqlfront.SelectStatement:
		return e.execSelect(s)
	case *sqlfront.InsertStatement:
		return e.execInsert(s)
	case *sqlfront.UpdateStatement:
		return e.execUpdate(s)
	case *sqlfront.DeleteStatement:
		return e.execDelete(s)
	default:
		return nil, apperr.New(apperr.CodeInvalidQuery, "unrecognized statement type")
	}
}

// Result is what Execute returns: either Rows (SELECT) or an Affected
// count (INSERT/UPDATE/DELETE), never both populated meaningfully.
type Result struct {
	Rows     []schema.Row
	Affected int
}

func (e *Executor) execSelect(s *sqlfront.SelectStatement) (*Result, error) {
	table, ok := e.facade.Engine().Table(s.Table)
	if !ok {
		return nil, apperr.Newf(apperr.CodeTableNotFound, "table %q not found", s.Table)
	}

	predicate := buildPredicate(s.Where)
	wildcard := len(s.Projection) == 1 && s.Projection[0] == "*"

	var out []schema.Row
	for _, row := range table.Rows {
		if !predicate(row) {
			continue
		}
		if wildcard {
			out = append(out, row.Clone())
			continue
		}
		projected := make(schema.Row, len(s.Projection))
		for _, col := range s.Projection {
			projected[col] = row.Get(col)
		}
		out = append(out, projected)
	}
	if out == nil {
		out = []schema.Row{}
	}
	return &Result{Rows: out}, nil
}

func (e *Executor) execInsert(s *sqlfront.InsertStatement) (*Result, error) {
	row := make(schema.Row)

	if len(s.Columns) == 0 {
		table, ok := e.facade.Engine().Table(s.Table)
		if ok {
			n := len(table.Columns)
			if len(s.Values) < n {
				n = len(s.Values)
			}
			for i := 0; i < n; i++ {
				row[table.Columns[i]] = s.Values[i]
			}
		}
	} else {
		n := len(s.Columns)
		if len(s.Values) < n {
			n = len(s.Values)
		}
		for i := 0; i < n; i++ {
			row[s.Columns[i]] = s.Values[i]
		}
	}

	if err := e.facade.InsertRow(s.Table, row); err != nil {
		return nil, apperr.Wrap(apperr.CodeInsertFailed, "insert failed", err)
	}
	return &Result{Affected: 1}, nil
}

func (e *Executor) execUpdate(s *sqlfront.UpdateStatement) (*Result, error) {
	updates := make(map[string]string, len(s.Assignments))
	for _, a := range s.Assignments {
		updates[a.Column] = a.Value
	}

	predicate := storage.AlwaysTrue
	if s.Where != nil {
		predicate = buildPredicate(s.Where)
	}

	n, err := e.facade.UpdateRows(s.Table, updates, predicate)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUpdateFailed, "update failed", err)
	}
	return &Result{Affected: n}, nil
}

func (e *Executor) execDelete(s *sqlfront.DeleteStatement) (*Result, error) {
	// An unconditional DELETE is a no-op by design: it is the guardrail
	// against `DELETE FROM t` wiping a table. This is intentionally
	// asymmetric with UPDATE's no-WHERE-updates-all behavior.
	predicate := storage.AlwaysFalse
	if s.Where != nil {
		predicate = buildPredicate(s.Where)
	}

	n, err := e.facade.DeleteRows(s.Table, predicate)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeTableNotFound, "delete failed", err)
	}
	return &Result{Affected: n}, nil
}

// buildPredicate closes over cond to produce a storage.Predicate. A nil
// cond yields a predicate matching every row.
func buildPredicate(cond *sqlfront.Condition) storage.Predicate {
	if cond == nil {
		return storage.AlwaysTrue
	}
	return func(row schema.Row) bool {
		if !row.Has(cond.Column) {
			return false
		}
		actual := row.Get(cond.Column)
		switch cond.Operator {
		case "=":
			return actual == cond.Value
		case "!=", "<>":
			return actual != cond.Value
		case ">", "<", ">=", "<=":
			left := parseIntOrZero(actual)
			right := parseIntOrZero(cond.Value)
			switch cond.Operator {
			case ">":
				return left > right
			case "<":
				return left < right
			case ">=":
				return left >= right
			case "<=":
				return left <= right
			}
		}
		return false
	}
}

// parseIntOrZero parses s as a signed 32-bit integer, substituting 0 on
// any parse failure (B5).
func parseIntOrZero(s string) int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}
