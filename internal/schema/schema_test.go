package schema

import "testing"

func TestRowGetMissingColumnIsEmptyString(t *testing.T) {
	r := Row{"name": "Ann"}
	if got := r.Get("age"); got != "" {
		t.Errorf("expected empty string for missing column, got %q", got)
	}
}

func TestRowHas(t *testing.T) {
	r := Row{"name": "Ann"}
	if !r.Has("name") {
		t.Error("expected Has(name) to be true")
	}
	if r.Has("age") {
		t.Error("expected Has(age) to be false")
	}
}

func TestRowCloneIsIndependent(t *testing.T) {
	r := Row{"name": "Ann"}
	c := r.Clone()
	c["name"] = "Bob"
	if r["name"] != "Ann" {
		t.Errorf("mutating the clone mutated the original: %q", r["name"])
	}
}

func TestNewTableHasColumn(t *testing.T) {
	tbl := NewTable("users", []string{"id", "name"}, "id")
	if !tbl.HasColumn("name") {
		t.Error("expected table to have column 'name'")
	}
	if tbl.HasColumn("nonexistent") {
		t.Error("expected table not to have column 'nonexistent'")
	}
	if tbl.RowCount() != 0 {
		t.Errorf("expected a fresh table to have 0 rows, got %d", tbl.RowCount())
	}
}
