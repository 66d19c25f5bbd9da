package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/games/lines"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

const defaultVariant = "lines"

var (
	flagConfig string
	flagLayout string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing the specified variant (default: lines).

Controls:
  Mouse click          - Pick a ball, then click an empty cell to move it
  Arrows/WASD          - Move the cursor
  Enter/Space          - Pick or drop at the cursor
  Esc                  - Drop the selection
  P                    - Pause
  R                    - Restart
  Ctrl+S               - Save a screenshot
  Q/Ctrl+C             - Quit

Variants:
  lines         - Runs cleared anchor by anchor; a run of six leaves one ball
  lines_strict  - Every ball of every run is cleared

Examples:
  lines play
  lines play lines_strict
  lines play --seed 42
  lines play --config ./big-board.yaml
  lines play --layout ./layouts/almost.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Start from a layout YAML file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultVariant
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lines list' to see available variants.")
		os.Exit(1)
	}

	logger, closer, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	runErr := playGame(gameID, store, logger, runtimeConfig())

	// Close before a potential exit
	if store != nil {
		store.Close()
	}
	closer.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playGame creates the variant and runs it until the player quits.
func playGame(gameID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	lines.SetConfigPath(flagConfig)
	lines.SetLayoutPath(flagLayout)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("starting", "game", gameID, "config", flagConfig, "layout", flagLayout)
	return tui.Run(game, store, logger, cfg)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the results database. The game runs without it when it
// cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("could not open results database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
