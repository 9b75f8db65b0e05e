package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/array-heist/internal/games/heist"
	"github.com/vovakirdan/array-heist/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the heist",
	Long: `Start a game on level 1, or on the level given by --level.

Type an index and a value, then press Enter to insert the digit; digits to
the right shift over. Type a pattern such as "1,2,3" in the search field to
watch the array being scanned.

Controls:
  Enter       - Insert (index/value fields) or search (search field)
  Ctrl+D      - Delete at the typed index
  Tab         - Next field (index, value, search, board)
  Left/Right  - Move the board cursor;  X - delete the cell under it
  Ctrl+L      - Clear the array
  Ctrl+T      - Show/hide the secret
  Ctrl+R      - Retry with a new secret
  Ctrl+N      - Next level (after a win)
  Esc/Ctrl+C  - Quit

Examples:
  heist play
  heist play --level 3
  heist play --seed 42 --config ./my-heist.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, fmt.Sprintf("Level to start on (1-%d)", heist.MaxLevel))
}

func runPlay(_ *cobra.Command, _ []string) {
	if heist.GetRule(flagLevel) == nil {
		fmt.Fprintf(os.Stderr, "Error: %v: %d\n", heist.ErrNoSuchLevel, flagLevel)
		fmt.Fprintln(os.Stderr, "Run 'heist levels' to see available levels.")
		os.Exit(1)
	}

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

	runID := uuid.NewString()
	logger.Info("game started", "run", runID, "level", flagLevel, "seed", flagSeed)

	_, runErr := tui.Run(tui.Options{
		Runtime: runtimeConfig(flagLevel),
		Config:  gameCfg,
		Store:   store,
		Logger:  logger,
		Player:  playerName(),
		RunID:   runID,
	})

	if store != nil {
		if runErr == nil {
			if err := printRun(os.Stdout, store, runID); err != nil {
				logger.Warn("could not summarize run", "run", runID, "error", err)
			}
		}
		// Close store before potential exit
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
