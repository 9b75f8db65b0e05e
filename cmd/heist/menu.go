package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/array-heist/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Pick the campaign or a single level; when you leave a game with Esc you
return to the menu. Tab opens the best-times board.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best times
  Q            - Quit

Examples:
  heist menu
  heist menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameCfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	player := playerName()
	runID := uuid.NewString()
	cfg := runtimeConfig(1)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, 1, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		cfg.StartLevel = menuResult.Level
		logger.Info("game started", "run", runID, "level", cfg.StartLevel)

		back, runErr := tui.Run(tui.Options{
			Runtime: cfg,
			Config:  gameCfg,
			Store:   store,
			Logger:  logger,
			Player:  player,
			RunID:   runID,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		if !back {
			break // Ctrl+C quits the whole program
		}
	}

	if store != nil {
		if err := printRun(os.Stdout, store, runID); err != nil {
			logger.Warn("could not summarize run", "run", runID, "error", err)
		}
		store.Close()
	}
}
