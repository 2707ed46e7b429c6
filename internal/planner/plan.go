// Package planner lowers a parsed statement into an ordered execution plan,
// estimates per-step cost and predicate selectivity, validates the plan
// against a live catalog, and classifies query complexity. The executor
// does not consume the plan to run a statement (it interprets the AST
// directly) — the plan exists for cost/diagnostic/validation purposes, a
// deliberate dual-path design (§9 O3).
package planner

import (
	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/sqlfront"
)

// QueryType classifies which statement kind a Plan was lowered from.
type QueryType int

const (
	QuerySelect QueryType = iota
	QueryInsert
	QueryUpdate
	QueryDelete
)

// StepKind enumerates the execution steps a Plan can carry.
type StepKind int

const (
	StepTableScan StepKind = iota
	StepFilterRows
	StepProjectColumns
	StepInsertRow
	StepUpdateRows
	StepDeleteRows
)

// Step is one ordered entry in a Plan's execution_steps list.
type Step struct {
	Kind          StepKind
	EstimatedRows int      // meaningful for StepTableScan
	Selectivity   float64  // meaningful for StepFilterRows
	Columns       []string // meaningful for StepProjectColumns
	Cost          float64
}

// Plan is the lowered, costed representation of one statement.
type Plan struct {
	QueryType      QueryType
	Table          string
	Projection     []string
	Where          *sqlfront.Condition
	Assignments    []sqlfront.Assignment
	InsertColumns  []string
	InsertValues   []string
	ExecutionSteps []Step
	EstimatedCost  float64
}

// selectivityForOperator returns the fixed selectivity the optimizer
// assigns to a WHERE clause's comparison operator.
func selectivityForOperator(op string) float64 {
	switch op {
	case "=":
		return 0.1
	case ">", "<":
		return 0.3
	case ">=", "<=":
		return 0.4
	case "!=", "<>":
		return 0.9
	default:
		return 0.5
	}
}

// Lower lowers a parsed statement into a Plan.
func Lower(stmt sqlfront.Statement) (*Plan, error) {
	switch s := stmt.(type) {
	case *sqlfront.SelectStatement:
		return lowerSelect(s), nil
	case *sqlfront.InsertStatement:
		return lowerInsert(s), nil
	case *sqlfront.UpdateStatement:
		return lowerUpdate(s), nil
	case *sqlfront.DeleteStatement:
		return lowerDelete(s), nil
	default:
		return nil, apperr.New(apperr.CodeInvalidQuery, "unrecognized statement type")
	}
}

func lowerSelect(s *sqlfront.SelectStatement) *Plan {
	p := &Plan{
		QueryType:  QuerySelect,
		Table:      s.Table,
		Projection: s.Projection,
		Where:      s.Where,
	}
	scan := Step{Kind: StepTableScan, EstimatedRows: 1000}
	scan.Cost = float64(scan.EstimatedRows) * 0.1
	p.ExecutionSteps = append(p.ExecutionSteps, scan)
	p.EstimatedCost += scan.Cost

	if s.Where != nil {
		sel := selectivityForOperator(s.Where.Operator)
		step := Step{Kind: StepFilterRows, Selectivity: sel}
		step.Cost = 100 * (1 - sel)
		p.ExecutionSteps = append(p.ExecutionSteps, step)
		p.EstimatedCost += step.Cost
	}

	if len(s.Projection) > 0 && !(len(s.Projection) == 1 && s.Projection[0] == "*") {
		step := Step{Kind: StepProjectColumns, Columns: s.Projection}
		step.Cost = 0.5 * float64(len(s.Projection))
		p.ExecutionSteps = append(p.ExecutionSteps, step)
		p.EstimatedCost += step.Cost
	}
	return p
}

func lowerInsert(s *sqlfront.InsertStatement) *Plan {
	p := &Plan{
		QueryType:     QueryInsert,
		Table:         s.Table,
		InsertColumns: s.Columns,
		InsertValues:  s.Values,
	}
	step := Step{Kind: StepInsertRow, Cost: 50}
	p.ExecutionSteps = append(p.ExecutionSteps, step)
	p.EstimatedCost += step.Cost
	return p
}

func lowerUpdate(s *sqlfront.UpdateStatement) *Plan {
	p := &Plan{
		QueryType:   QueryUpdate,
		Table:       s.Table,
		Assignments: s.Assignments,
		Where:       s.Where,
	}
	step := Step{Kind: StepUpdateRows, Cost: 75}
	p.ExecutionSteps = append(p.ExecutionSteps, step)
	p.EstimatedCost += step.Cost

	if s.Where != nil {
		sel := selectivityForOperator(s.Where.Operator)
		fstep := Step{Kind: StepFilterRows, Selectivity: sel}
		fstep.Cost = 100 * (1 - sel)
		p.ExecutionSteps = append(p.ExecutionSteps, fstep)
		p.EstimatedCost += fstep.Cost
	}
	return p
}

func lowerDelete(s *sqlfront.DeleteStatement) *Plan {
	p := &Plan{
		QueryType: QueryDelete,
		Table:     s.Table,
		Where:     s.Where,
	}
	step := Step{Kind: StepDeleteRows, Cost: 25}
	p.ExecutionSteps = append(p.ExecutionSteps, step)
	p.EstimatedCost += step.Cost

	if s.Where != nil {
		sel := selectivityForOperator(s.Where.Operator)
		fstep := Step{Kind: StepFilterRows, Selectivity: sel}
		fstep.Cost = 100 * (1 - sel)
		p.ExecutionSteps = append(p.ExecutionSteps, fstep)
		p.EstimatedCost += fstep.Cost
	}
	return p
}

// Validate checks plan against a live catalog snapshot: whether the table
// exists, and the set of columns it declares. The wildcard column "*" is
// exempt from column-existence checks.
func Validate(plan *Plan, tableExists bool, tableColumns []string) error {
	if !tableExists {
		return apperr.Newf(apperr.CodeTableNotFound, "table %q not found", plan.Table)
	}

	known := make(map[string]bool, len(tableColumns))
	for _, c := range tableColumns {
		known[c] = true
	}
	checkColumn := func(col string) error {
		if col == "*" {
			return nil
		}
		if !known[col] {
			return apperr.Newf(apperr.CodeColumnNotFound, "column %q not found on table %q", col, plan.Table)
		}
		return nil
	}

	for _, col := range plan.Projection {
		if err := checkColumn(col); err != nil {
			return err
		}
	}
	if plan.Where != nil {
		if err := checkColumn(plan.Where.Column); err != nil {
			return err
		}
	}
	for _, a := range plan.Assignments {
		if err := checkColumn(a.Column); err != nil {
			return err
		}
	}
	if plan.QueryType == QueryInsert && len(plan.InsertColumns) > 0 {
		if len(plan.InsertColumns) != len(plan.InsertValues) {
			return apperr.New(apperr.CodeInvalidQuery, "insert column count does not match value count")
		}
		for _, col := range plan.InsertColumns {
			if err := checkColumn(col); err != nil {
				return err
			}
		}
	}
	return nil
}

// Complexity is the bucket a Plan's score falls into.
type Complexity int

const (
	ComplexitySimple Complexity = iota
	ComplexityMedium
	ComplexityComplex
)

func (c Complexity) String() string {
	switch c {
	case ComplexitySimple:
		return "Simple"
	case ComplexityMedium:
		return "Medium"
	default:
		return "Complex"
	}
}

// Classify computes the fixed complexity score and bucket for plan.
func Classify(plan *Plan) (score int, complexity Complexity) {
	switch plan.QueryType {
	case QuerySelect:
		score = 1
	case QueryInsert:
		score = 2
	case QueryDelete:
		score = 2
	case QueryUpdate:
		score = 3
	}
	if plan.Where != nil {
		score += 2
	}
	if len(plan.Projection) > 5 {
		score++
	}

	switch {
	case score <= 2:
		complexity = ComplexitySimple
	case score <= 5:
		complexity = ComplexityMedium
	default:
		complexity = ComplexityComplex
	}
	return score, complexity
}

// normalize produces the plan-cache key for a raw SQL string: trimmed and
// collapsed to a single canonical case via the same fold used by the
// lexer's keyword matching, so `select * from t` and `SELECT * FROM t`
// share a cache entry.
func normalize(sql string) string {
	return sqlfront.FoldKey(sql)
}
