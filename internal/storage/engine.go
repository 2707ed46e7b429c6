// Package storage implements the in-memory relational store: the catalog of
// tables, the invariants that guard every mutation (I1-I7 in the design),
// metadata bookkeeping, and the binary snapshot codec used to persist the
// whole engine to a single file.
package storage

import (
	"strings"
	"sync"
	"time"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/schema"
)

// Predicate decides, for a given row, whether it is a candidate for an
// update or delete. UPDATE/DELETE model their WHERE clause (or its absence)
// as a Predicate rather than threading AST nodes into the storage layer.
type Predicate func(schema.Row) bool

// AlwaysTrue is the predicate used by UPDATE without a WHERE clause.
func AlwaysTrue(schema.Row) bool { return true }

// AlwaysFalse is the predicate used by DELETE without a WHERE clause — the
// guardrail against an unconditional DELETE wiping a table (B2).
func AlwaysFalse(schema.Row) bool { return false }

// Engine owns every table and the engine-wide metadata record. All
// operations are synchronous; the mutex exists only to guard against a
// misbehaving embedder driving the engine from more than one goroutine, not
// to support concurrent statement execution (see §5 of the design).
type Engine struct {
	mu     sync.Mutex
	tables map[string]*schema.Table
	meta   Metadata
	now    func() time.Time
}

// New constructs an empty engine with fresh metadata.
func New() *Engine {
	e := &Engine{
		tables: make(map[string]*schema.Table),
		now:    time.Now,
	}
	e.meta = newMetadata(e.now().Unix())
	return e
}

// Metadata returns a copy of the engine's current metadata record.
func (e *Engine) Metadata() Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meta
}

// TableNames returns the catalog's table names in no particular order.
func (e *Engine) TableNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.tables))
	for n := range e.tables {
		names = append(names, n)
	}
	return names
}

// Table returns the named table and whether it exists. The returned pointer
// aliases engine state; callers outside this package should treat it as
// read-only.
func (e *Engine) Table(name string) (*schema.Table, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tables[name]
	return t, ok
}

// CreateTable registers a new table. See I4/I5 for the uniqueness and
// non-empty-schema invariants enforced here.
func (e *Engine) CreateTable(name string, columns []string, primaryKey string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return apperr.New(apperr.CodeInvalidTableName, "table name must not be empty")
	}
	if _, exists := e.tables[name]; exists {
		return apperr.Newf(apperr.CodeTableAlreadyExists, "table %q already exists", name)
	}
	if len(columns) == 0 {
		return apperr.New(apperr.CodeInvalidSchema, "table must have at least one column")
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return apperr.Newf(apperr.CodeInvalidSchema, "duplicate column %q", c)
		}
		seen[c] = true
	}
	if primaryKey != "" && !seen[primaryKey] {
		return apperr.Newf(apperr.CodeInvalidSchema, "primary key %q is not a declared column", primaryKey)
	}

	e.tables[name] = schema.NewTable(name, columns, primaryKey)
	e.meta.TablesCreated++
	e.meta.touch(e.now().Unix())
	return nil
}

// DropTable removes a table entirely. Not reachable from the SQL surface;
// exposed for internal/administrative use only, per §3 of the design.
func (e *Engine) DropTable(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.tables[name]; !ok {
		return apperr.Newf(apperr.CodeTableNotFound, "table %q not found", name)
	}
	delete(e.tables, name)
	e.meta.touch(e.now().Unix())
	return nil
}

// InsertRow appends row to table, assigning the next dense row id (I7) and
// enforcing schema closure (I1), PK presence (I3) and PK uniqueness (I2).
func (e *Engine) InsertRow(table string, row schema.Row) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tables[table]
	if !ok {
		return apperr.Newf(apperr.CodeTableNotFound, "table %q not found", table)
	}
	for col := range row {
		if !t.HasColumn(col) {
			return apperr.Newf(apperr.CodeColumnNotFound, "column %q not found on table %q", col, table)
		}
	}
	if t.PrimaryKey != "" {
		pkVal, has := row[t.PrimaryKey]
		if !has {
			return apperr.Newf(apperr.CodeMissingPrimaryKey, "missing primary key %q on table %q", t.PrimaryKey, table)
		}
		for _, existing := range t.Rows {
			if existing.Get(t.PrimaryKey) == pkVal {
				return apperr.Newf(apperr.CodePrimaryKeyViolation, "duplicate primary key %q=%q on table %q", t.PrimaryKey, pkVal, table)
			}
		}
	}

	id := t.NextRowID
	t.Rows[id] = row.Clone()
	t.NextRowID = id + 1

	e.meta.RowsInserted++
	e.meta.touch(e.now().Unix())
	return nil
}

// UpdateRows applies updates to every row for which predicate holds,
// returning the number of rows modified. If updates touches the table's
// primary key, the update is rejected before any row is modified when it
// would create a duplicate PK value, either against an unmatched row (the
// classic case) or because more than one matched row would collapse onto
// the same new PK value (§9 O1).
func (e *Engine) UpdateRows(table string, updates map[string]string, predicate Predicate) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tables[table]
	if !ok {
		return 0, apperr.Newf(apperr.CodeTableNotFound, "table %q not found", table)
	}
	for col := range updates {
		if !t.HasColumn(col) {
			return 0, apperr.Newf(apperr.CodeColumnNotFound, "column %q not found on table %q", col, table)
		}
	}

	newPK, touchesPK := updates[t.PrimaryKey]
	if t.PrimaryKey != "" && touchesPK {
		var matched int
		for _, row := range t.Rows {
			if predicate(row) {
				matched++
			}
		}
		if matched > 1 {
			return 0, apperr.Newf(apperr.CodePrimaryKeyViolation, "update on %q would assign primary key %q=%q to %d rows", table, t.PrimaryKey, newPK, matched)
		}
		for _, row := range t.Rows {
			if predicate(row) {
				continue
			}
			if row.Get(t.PrimaryKey) == newPK {
				return 0, apperr.Newf(apperr.CodePrimaryKeyViolation, "update on %q would duplicate primary key %q=%q", table, t.PrimaryKey, newPK)
			}
		}
	}

	count := 0
	for id, row := range t.Rows {
		if !predicate(row) {
			continue
		}
		updated := row.Clone()
		for col, val := range updates {
			updated[col] = val
		}
		t.Rows[id] = updated
		count++
	}

	if count > 0 {
		e.meta.RowsUpdated += uint64(count)
		e.meta.touch(e.now().Unix())
	}
	return count, nil
}

// DeleteRows removes every row for which predicate holds, returning the
// count removed.
func (e *Engine) DeleteRows(table string, predicate Predicate) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tables[table]
	if !ok {
		return 0, apperr.Newf(apperr.CodeTableNotFound, "table %q not found", table)
	}

	var toDelete []int
	for id, row := range t.Rows {
		if predicate(row) {
			toDelete = append(toDelete, id)
		}
	}
	for _, id := range toDelete {
		delete(t.Rows, id)
	}

	if len(toDelete) > 0 {
		e.meta.RowsDeleted += uint64(len(toDelete))
		e.meta.touch(e.now().Unix())
	}
	return len(toDelete), nil
}

// GetTableStats computes per-column distinctness statistics used by the
// planner's cost estimation diagnostics.
func (e *Engine) GetTableStats(table string) (TableStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tables[table]
	if !ok {
		return TableStats{}, apperr.Newf(apperr.CodeTableNotFound, "table %q not found", table)
	}

	stats := TableStats{
		TableName: table,
		RowCount:  len(t.Rows),
		Columns:   make(map[string]ColumnStats, len(t.Columns)),
	}
	for _, col := range t.Columns {
		seen := make(map[string]struct{})
		total := 0
		for _, row := range t.Rows {
			if !row.Has(col) {
				continue
			}
			total++
			seen[row.Get(col)] = struct{}{}
		}
		selectivity := 1.0
		if total > 0 {
			selectivity = float64(len(seen)) / float64(total)
		}
		stats.Columns[col] = ColumnStats{
			DistinctValues: len(seen),
			TotalObserved:  total,
			Selectivity:    selectivity,
		}
	}
	return stats, nil
}
