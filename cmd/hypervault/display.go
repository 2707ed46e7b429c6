package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ampere207/hyper-vault/internal/export"
	"github.com/ampere207/hyper-vault/internal/planner"
	"github.com/ampere207/hyper-vault/internal/schema"
)

func displayQueryPlan(plan *planner.Plan) {
	fmt.Printf("   Table: %s\n", plan.Table)
	fmt.Printf("   Estimated Cost: %.2f\n", plan.EstimatedCost)
	fmt.Println("   Execution Steps:")
	for i, step := range plan.ExecutionSteps {
		fmt.Printf("     %d. %s\n", i+1, describeStep(step))
	}
}

func describeStep(step planner.Step) string {
	switch step.Kind {
	case planner.StepTableScan:
		return fmt.Sprintf("TableScan(estimated_rows=%d, cost=%.2f)", step.EstimatedRows, step.Cost)
	case planner.StepFilterRows:
		return fmt.Sprintf("FilterRows(selectivity=%.2f, cost=%.2f)", step.Selectivity, step.Cost)
	case planner.StepProjectColumns:
		return fmt.Sprintf("ProjectColumns(%s, cost=%.2f)", strings.Join(step.Columns, ","), step.Cost)
	case planner.StepInsertRow:
		return fmt.Sprintf("InsertRow(cost=%.2f)", step.Cost)
	case planner.StepUpdateRows:
		return fmt.Sprintf("UpdateRows(cost=%.2f)", step.Cost)
	case planner.StepDeleteRows:
		return fmt.Sprintf("DeleteRows(cost=%.2f)", step.Cost)
	default:
		return "Unknown"
	}
}

// displayResults renders rows as an ASCII table with one column per
// distinct key observed across all rows, sorted for a stable header order.
func displayResults(rows []schema.Row) {
	if len(rows) == 0 {
		fmt.Println("   No rows returned.")
		return
	}

	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)

	if len(columns) == 0 {
		fmt.Println("   No data to display.")
		return
	}

	widths := make(map[string]int, len(columns))
	for _, col := range columns {
		widths[col] = len(col)
		if widths[col] < 12 {
			widths[col] = 12
		}
	}
	for _, row := range rows {
		for _, col := range columns {
			if v, ok := row[col]; ok && len(v) > widths[col] {
				widths[col] = len(v)
			}
		}
	}

	printRowLine(columns, widths, func(col string) string { return col })
	printSeparator(columns, widths)
	for _, row := range rows {
		printRowLine(columns, widths, func(col string) string {
			if v, ok := row[col]; ok {
				return v
			}
			return "NULL"
		})
	}
	fmt.Printf("   (%d rows)\n", len(rows))
}

func printRowLine(columns []string, widths map[string]int, cell func(string) string) {
	fmt.Print("   ")
	for _, col := range columns {
		fmt.Printf("| %-*s ", widths[col], cell(col))
	}
	fmt.Println("|")
}

func printSeparator(columns []string, widths map[string]int) {
	fmt.Print("   ")
	for _, col := range columns {
		fmt.Print("|" + strings.Repeat("-", widths[col]+2))
	}
	fmt.Println("|")
}

func (s *shell) showTables() {
	fmt.Println("Available Tables:")
	fmt.Println("===================")

	names := s.facade.Engine().TableNames()
	if len(names) == 0 {
		fmt.Println("   No tables found in the database.")
		return
	}
	sort.Strings(names)

	for _, name := range names {
		table, _ := s.facade.Engine().Table(name)
		fmt.Printf("   Table: %s\n", name)
		fmt.Printf("      Columns: %s\n", strings.Join(table.Columns, ", "))
		if table.PrimaryKey != "" {
			fmt.Printf("      Primary Key: %s\n", table.PrimaryKey)
		}
		fmt.Printf("      Rows: %d\n", table.RowCount())

		if stats, err := s.facade.Engine().GetTableStats(name); err == nil {
			fmt.Println("      Statistics:")
			cols := make([]string, 0, len(stats.Columns))
			for c := range stats.Columns {
				cols = append(cols, c)
			}
			sort.Strings(cols)
			for _, c := range cols {
				cs := stats.Columns[c]
				fmt.Printf("        %s: %d unique values (selectivity: %.2f)\n", c, cs.DistinctValues, cs.Selectivity)
			}
		}
		fmt.Println()
	}
}

func (s *shell) showAllData() {
	fmt.Println("All Database Content:")
	fmt.Println("=========================")

	names := s.facade.Engine().TableNames()
	if len(names) == 0 {
		fmt.Println("   No tables found in the database.")
		return
	}
	sort.Strings(names)

	totalRows := 0
	for _, name := range names {
		table, _ := s.facade.Engine().Table(name)
		fmt.Printf("Table: %s\n", name)
		fmt.Printf("   Columns: %s\n", strings.Join(table.Columns, ", "))
		if table.PrimaryKey != "" {
			fmt.Printf("   Primary Key: %s\n", table.PrimaryKey)
		}
		fmt.Println()

		if len(table.Rows) == 0 {
			fmt.Println("   No data in this table.")
			fmt.Println()
			continue
		}

		ids := export.SortedRowIDs(table.Rows)
		rows := make([]schema.Row, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, table.Rows[id])
		}
		displayResults(rows)
		totalRows += len(rows)
		fmt.Println()
		fmt.Println("   " + strings.Repeat("-", 60))
		fmt.Println()
	}

	fmt.Println("Database Summary:")
	fmt.Printf("   Total Tables: %d\n", len(names))
	fmt.Printf("   Total Rows: %d\n", totalRows)
}

func (s *shell) showStatistics() {
	fmt.Println("Database Statistics:")
	fmt.Println("======================")

	meta := s.facade.Engine().Metadata()
	fmt.Println("Storage Statistics:")
	fmt.Printf("   Version: %s\n", meta.Version)
	fmt.Printf("   Total Operations: %d\n", meta.TotalOperations)
	fmt.Printf("   Tables Created: %d\n", meta.TablesCreated)
	fmt.Printf("   Rows Inserted: %d\n", meta.RowsInserted)
	fmt.Printf("   Rows Updated: %d\n", meta.RowsUpdated)
	fmt.Printf("   Rows Deleted: %d\n", meta.RowsDeleted)
	fmt.Printf("   Last Modified: unix timestamp %d\n", meta.LastModified)
	fmt.Println()

	qs := s.planner.Stats()
	fmt.Println("Query Statistics:")
	fmt.Printf("   Total Queries: %d\n", qs.Total)
	fmt.Printf("   SELECT Queries: %d\n", qs.SelectCount)
	fmt.Printf("   INSERT Queries: %d\n", qs.InsertCount)
	fmt.Printf("   UPDATE Queries: %d\n", qs.UpdateCount)
	fmt.Printf("   DELETE Queries: %d\n", qs.DeleteCount)
	fmt.Printf("   Failed Queries: %d\n", qs.Failed)
	if qs.Total > 0 {
		successRate := float64(qs.Total-qs.Failed) / float64(qs.Total) * 100
		fmt.Printf("   Success Rate: %.1f%%\n", successRate)
		fmt.Printf("   Average Execution Time: %.3fs\n", qs.MeanExecSeconds)
	}
	fmt.Println()

	fmt.Println("Table Details:")
	names := s.facade.Engine().TableNames()
	sort.Strings(names)
	for _, name := range names {
		stats, err := s.facade.Engine().GetTableStats(name)
		if err != nil {
			continue
		}
		fmt.Printf("   %s (%d rows):\n", name, stats.RowCount)
		cols := make([]string, 0, len(stats.Columns))
		for c := range stats.Columns {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			cs := stats.Columns[c]
			fmt.Printf("     %s: %d unique/%d total (selectivity: %.3f)\n", c, cs.DistinctValues, cs.TotalObserved, cs.Selectivity)
		}
	}
}
