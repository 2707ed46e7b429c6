// Command hypervault is the interactive shell around the core engine: it
// opens (or creates) the snapshot file, seeds a sample 'users' table the
// first time it runs, and then reads one SQL statement or shell command
// per line from standard input until the user exits.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ampere207/hyper-vault/internal/applog"
	"github.com/ampere207/hyper-vault/internal/config"
	"github.com/ampere207/hyper-vault/internal/persistence"
	"github.com/ampere207/hyper-vault/internal/planner"
)

func main() {
	configPath := flag.String("config", "", "path to an optional JSON config override file")
	flag.Parse()

	cfg := config.LoadConfigOrDefault(*configPath)
	logger := applog.New(cfg.LogLevel, os.Stderr)

	fmt.Println("Welcome to HyperVault Database!")
	fmt.Println("=====================================")
	fmt.Println("A small SQL engine with query planning and a binary snapshot store.")
	fmt.Println("Type 'help' for available commands or 'exit' to quit.")
	fmt.Println()

	facade, err := persistence.Open(cfg.SnapshotPath, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open snapshot")
		fmt.Fprintln(os.Stderr, "fatal: could not open database:", err)
		os.Exit(1)
	}

	sessionID := uuid.NewString()
	logger.Info().Str("session_id", sessionID).Str("snapshot_path", cfg.SnapshotPath).Msg("hypervault starting")

	seedSampleData(facade, logger)
	displayStartupInfo(facade)

	var cache *planner.PlanCache
	if cfg.PlanCache.Enabled {
		cache = planner.NewPlanCache(
			time.Duration(cfg.PlanCache.TTLSeconds)*time.Second,
			cfg.PlanCache.MaxEntries,
			logger,
		)
	}
	pl := planner.New(cache, logger)

	sh := &shell{
		facade:    facade,
		planner:   pl,
		prompt:    cfg.Prompt,
		sessionID: sessionID,
		log:       logger,
		in:        bufio.NewReader(os.Stdin),
	}
	sh.run()
}
