// Package export implements the supplemented `export <table>` shell
// command: writing a table's current rows to an .xlsx workbook via
// excelize. This is shell-layer functionality, not a core-engine
// operation — it has no bearing on any invariant in §3 of the design.
package export

import (
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/schema"
)

const sheetName = "Sheet1"

// TableToXLSX writes columns as the header row and rows as the data rows,
// in the order given, to path. Rows are expected to already be in the
// caller's preferred (or simply stable) order; this package imposes none.
func TableToXLSX(path string, columns []string, rows []schema.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return apperr.Wrap(apperr.CodeIO, "failed to compute header cell", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return apperr.Wrap(apperr.CodeIO, "failed to write header cell", err)
		}
	}

	for r, row := range rows {
		for c, name := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return apperr.Wrap(apperr.CodeIO, "failed to compute data cell", err)
			}
			if err := f.SetCellValue(sheetName, cell, row.Get(name)); err != nil {
				return apperr.Wrap(apperr.CodeIO, "failed to write data cell", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperr.Wrap(apperr.CodeIO, "failed to save workbook", err)
	}
	return nil
}

// SortedRowIDs returns the row ids of rowsByID in ascending order, a
// convenience used by callers that want a stable export ordering even
// though the storage layer itself makes no row-order guarantee.
func SortedRowIDs(rowsByID map[int]schema.Row) []int {
	ids := make([]int, 0, len(rowsByID))
	for id := range rowsByID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
