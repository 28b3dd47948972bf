// Command hcm-assistant is an interactive demo of the HCM operations
// assistant. It reads requests from stdin, runs each one through the
// workflow, and keeps per-session memory between requests.
//
// Usage:
//
//	hcm-assistant [-config config.yaml] [-session id] [-db sessions.db]
//
// Config keys (YAML or JSON): max_steps, session_db, log_level
// (debug|info|warn|error), log_format (text|json), metrics (bool,
// records session snapshot sizes through the global OTel meter provider).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/randalmurphal/stategraph/pkg/hcm"
	"github.com/randalmurphal/stategraph/pkg/stategraph"
	"github.com/randalmurphal/stategraph/pkg/stategraph/config"
	"github.com/randalmurphal/stategraph/pkg/stategraph/observability"
	"github.com/randalmurphal/stategraph/pkg/stategraph/session"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	sessionID := flag.String("session", "", "session identifier (defaults to a new UUID)")
	dbPath := flag.String("db", "", "session database path (overrides config session_db)")
	flag.Parse()

	if err := run(*configPath, *sessionID, *dbPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, sessionID, dbPath string) error {
	cfg := config.New(nil)
	if configPath != "" {
		loaded, err := config.FromFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	if dbPath == "" {
		dbPath = cfg.String("session_db", "")
	}

	var store session.Store
	if dbPath != "" {
		sqliteStore, err := session.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}
	bridgeOpts := []hcm.BridgeOption{hcm.WithBridgeLogger(logger)}
	if cfg.Bool("metrics", false) {
		bridgeOpts = append(bridgeOpts, hcm.WithBridgeMetrics(observability.NewMetricsRecorder()))
	}
	bridge := hcm.NewBridge(store, bridgeOpts...)

	dir := &hcm.SimulatedDirectory{Logger: logger}
	workflow, err := hcm.BuildWorkflow(hcm.RuleAnalyzer{}, dir, nil)
	if err != nil {
		return err
	}

	maxSteps := cfg.Int("max_steps", stategraph.DefaultMaxSteps)

	fmt.Println("HCM assistant (simulated). Try:")
	fmt.Println("  Assign HR Manager role to john.doe")
	fmt.Println("  Reset password for jane.smith")
	fmt.Println("  Unlock user bob.jones")
	fmt.Println("Type 'quit' to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Println("bye")
			return scanner.Err()
		}

		state, err := bridge.Seed(sessionID, hcm.NewInitialState(input, nil))
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		ctx := stategraph.NewContext(context.Background(),
			stategraph.WithLogger(logger))

		final, err := workflow.Run(ctx, state,
			stategraph.WithMaxSteps(maxSteps),
			stategraph.WithRunLogger(logger))
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		fmt.Println(final.Result)
		fmt.Println()

		if err := bridge.Commit(sessionID, final); err != nil {
			fmt.Println("error:", err)
		}
	}

	return scanner.Err()
}

// newLogger builds the process logger from config.
func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.String("log_level", "warn")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.String("log_format", "text"), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
