// heist is a terminal puzzle game: build a hidden digit pattern inside a
// ten-slot array before the clock runs out.
//
// Usage:
//
//	heist play              - Play the campaign (or --level N)
//	heist menu              - Pick a level interactively
//	heist levels            - List the levels and their rules
//	heist scores [level]    - Show best clear times
//	heist serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible secrets
//	--db <path>          - Results database (default: ~/.heist/results.db, "" disables)
//	--config <path>      - Custom gameplay config YAML
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/array-heist/internal/config"
	"github.com/vovakirdan/array-heist/internal/core"
	"github.com/vovakirdan/array-heist/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heist",
	Short: "Code Breaker - The Array Heist",
	Long: `Code Breaker is a terminal puzzle game. A secret digit pattern is
hidden in each level; insert and delete digits in a ten-slot array until the
pattern (or, on the last level, its reverse) appears in consecutive slots.
Every level gives you 60 seconds.

Available commands:
  play     - Play the campaign or a single level
  menu     - Interactive level picker
  levels   - Show the level rules
  scores   - View best clear times
  serve    - Start SSH server for remote play

Examples:
  heist play
  heist play --level 3
  heist menu --log-file ./heist.log --log-level debug
  heist scores 2
  heist serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.heist/results.db", "Path to results database (empty disables)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger for the interactive commands. The terminal
// belongs to the TUI, so logs go to --log-file or nowhere.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the results database. A failure is logged and the game
// runs without records.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

// loadConfig loads gameplay settings from --config or the search path.
func loadConfig(logger *log.Logger) (config.HeistConfig, error) {
	cfg, err := config.LoadHeist(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}
	logger.Debug("config loaded",
		"step_delay_ms", cfg.Search.StepDelayMS,
		"flash_ms", cfg.Animation.FlashMS,
		"hints", cfg.Hints.Enabled,
	)
	return cfg, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(level int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.StartLevel = level
	return cfg
}

// playerName is the local account name recorded with results.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
