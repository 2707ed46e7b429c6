// Package schema holds the catalog entities shared by the rest of the
// engine: rows, tables and their column lists. It enforces no invariants
// itself — the storage engine is the sole authority for I1-I7; this package
// only models value containment.
package schema

// Row is an unordered mapping from column name to value. A row need not
// carry every column of its table's schema; a missing column reads back as
// the empty string at evaluation time.
type Row map[string]string

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Get returns the value at column, defaulting to the empty string when the
// row carries no entry for it.
func (r Row) Get(column string) string {
	return r[column]
}

// Has reports whether the row carries an explicit entry for column.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Table is a named entity holding an ordered column list, an optional
// primary-key column, and the rows currently stored under it, keyed by a
// dense row id assigned at insertion time (see storage package for the
// id-assignment invariant).
type Table struct {
	Name       string
	Columns    []string
	PrimaryKey string // empty when the table has no primary key
	Rows       map[int]Row
	NextRowID  int
}

// NewTable constructs an empty table with the given column list and
// optional primary key. Callers are expected to have already validated the
// column list and primary key per I4/I5; this constructor performs no
// validation of its own — see storage.Engine.CreateTable for the enforced
// invariants.
func NewTable(name string, columns []string, primaryKey string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: primaryKey,
		Rows:       make(map[int]Row),
	}
}

// HasColumn reports whether name is one of the table's declared columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of rows currently stored.
func (t *Table) RowCount() int {
	return len(t.Rows)
}
