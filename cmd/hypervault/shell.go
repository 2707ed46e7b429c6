package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ampere207/hyper-vault/internal/apperr"
	"github.com/ampere207/hyper-vault/internal/executor"
	"github.com/ampere207/hyper-vault/internal/export"
	"github.com/ampere207/hyper-vault/internal/persistence"
	"github.com/ampere207/hyper-vault/internal/planner"
	"github.com/ampere207/hyper-vault/internal/schema"
	"github.com/ampere207/hyper-vault/internal/sqlfront"
)

// shell is the thin external collaborator described in §1 of the design:
// it parses one line of input, executes it against the core engine, and
// renders either a row set or an error. None of the behavior here is a
// core-engine invariant.
type shell struct {
	facade    *persistence.Facade
	planner   *planner.Planner
	prompt    string
	sessionID string
	log       zerolog.Logger
	in        *bufio.Reader
}

func (s *shell) run() {
	exec := executor.New(s.facade)

	for {
		fmt.Print(s.prompt)
		line, err := s.in.ReadString('\n')
		if err != nil && err != io.EOF {
			fmt.Fprintln(os.Stderr, "error reading input:", err)
			continue
		}
		trimmed := strings.TrimSpace(line)

		switch strings.ToLower(trimmed) {
		case "":
			if err == io.EOF {
				fmt.Println()
				s.displaySessionSummary()
				s.logShutdown()
				return
			}
			continue
		case "exit", "quit", "q":
			fmt.Println("Goodbye! Thanks for using HyperVault Database!")
			s.displaySessionSummary()
			s.logShutdown()
			return
		case "help", "h":
			displayHelp()
			fmt.Println()
			continue
		case "show tables":
			s.showTables()
			fmt.Println()
			continue
		case "show all", "show data":
			s.showAllData()
			fmt.Println()
			continue
		case "show stats", "stats":
			s.showStatistics()
			fmt.Println()
			continue
		case "clear", "cls":
			fmt.Print("\x1B[2J\x1B[1;1H")
			continue
		}

		if strings.HasPrefix(strings.ToLower(trimmed), "export ") {
			s.handleExport(strings.TrimSpace(trimmed[len("export "):]))
			fmt.Println()
			continue
		}

		s.executeSQL(exec, trimmed)
		fmt.Println()

		if err == io.EOF {
			s.displaySessionSummary()
			s.logShutdown()
			return
		}
	}
}

// logShutdown emits the single info-level shutdown line required alongside
// the startup line logged in main (§10.1 of the design).
func (s *shell) logShutdown() {
	s.log.Info().Str("session_id", s.sessionID).Msg("session ended")
}

func (s *shell) executeSQL(exec *executor.Executor, input string) {
	fmt.Printf("Executing: %s\n", input)
	start := time.Now()

	stmt, err := sqlfront.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parse Error:", err)
		fmt.Println("Tip: check your SQL syntax. Type 'help' for examples.")
		return
	}
	fmt.Println("Query parsed successfully")

	plan, err := s.planner.Plan(input, stmt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Query Planning Error:", err)
		return
	}
	_, complexity := planner.Classify(plan)
	fmt.Printf("Query complexity: %s\n", complexity)
	if complexity == planner.ComplexityComplex {
		fmt.Println("Query plan:")
		displayQueryPlan(plan)
	}

	if table, ok := s.facade.Engine().Table(plan.Table); ok {
		if err := planner.Validate(plan, true, table.Columns); err != nil {
			fmt.Fprintln(os.Stderr, "Query validation failed:", err)
		}
	}

	qt := plan.QueryType
	result, execErr := exec.Execute(stmt)
	elapsed := time.Since(start)
	s.planner.RecordOutcome(qt, elapsed, execErr != nil)

	if execErr != nil {
		fmt.Fprintln(os.Stderr, "Execution Error:", formatExecutionError(execErr))
		return
	}

	fmt.Println("Query Results:")
	if result.Rows != nil {
		displayResults(result.Rows)
	} else {
		fmt.Printf("   %d row(s) affected\n", result.Affected)
	}
}

func formatExecutionError(err error) string {
	switch apperr.GetCode(err) {
	case apperr.CodeTableNotFound:
		return "Table not found"
	case apperr.CodeInsertFailed:
		return "Insert operation failed"
	case apperr.CodeUpdateFailed:
		return "Update operation failed"
	case apperr.CodeInvalidQuery:
		return "Invalid query structure"
	default:
		return err.Error()
	}
}

func (s *shell) handleExport(tableName string) {
	if tableName == "" {
		fmt.Fprintln(os.Stderr, "usage: export <table>")
		return
	}
	table, ok := s.facade.Engine().Table(tableName)
	if !ok {
		fmt.Fprintf(os.Stderr, "table %q not found\n", tableName)
		return
	}

	ids := export.SortedRowIDs(table.Rows)
	rows := make([]schema.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, table.Rows[id])
	}

	path := tableName + ".xlsx"
	if err := export.TableToXLSX(path, table.Columns, rows); err != nil {
		fmt.Fprintln(os.Stderr, "export failed:", err)
		return
	}
	fmt.Printf("Exported %d row(s) from %q to %s\n", len(rows), tableName, path)
}

func (s *shell) displaySessionSummary() {
	stats := s.planner.Stats()
	if stats.Total == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Session Summary:")
	fmt.Printf("   Session ID: %s\n", s.sessionID)
	fmt.Printf("   Queries Executed: %d\n", stats.Total)
	successRate := float64(stats.Total-stats.Failed) / float64(stats.Total) * 100
	fmt.Printf("   Success Rate: %.1f%%\n", successRate)
	if stats.MeanExecSeconds > 0 {
		fmt.Printf("   Average Query Time: %.6fs\n", stats.MeanExecSeconds)
	}
}
