// lines is the color-lines puzzle in the terminal.
//
// Usage:
//
//	lines list               - List game variants
//	lines play [variant]     - Play a variant (default: lines)
//	lines menu               - Pick a variant interactively
//	lines scores [variant]   - Show recorded results
//	lines rules              - Print the effective rule configuration
//	lines layouts <dir>      - List the starting layouts found in a directory
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for a reproducible board
//	--db <path>          - Set database path (default: ~/.lines/results.db)
//	--log <path>         - Log file, "-" for stderr (default: ~/.lines/lines.log)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/games/lines"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lines - line up balls of one color in your terminal",
	Long: `Lines is the classic color-lines puzzle for the terminal.

Move a ball to any empty cell it can reach through free cells. Five or more
balls of one color in a row or column disappear. Every move brings new
balls; the game ends when the board is full.

Available commands:
  list     - Show game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View recorded results
  rules    - Print the rule configuration
  layouts  - List starting layouts in a directory

Examples:
  lines play
  lines play lines_strict --seed 42
  lines play --config ./big-board.yaml
  lines scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lines/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.lines/lines.log", `Log file path ("-" for stderr)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(layoutsCmd)
}

// newLogger builds the application logger from the global flags and hands
// it to the game package. The returned closer releases the log file.
func newLogger() (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	if flagLogPath != "-" {
		path := expandHome(flagLogPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log: cannot create directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log: cannot open %s: %w", path, err)
		}
		w, closer = f, f
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lines",
		Level:           level,
	})
	lines.SetLogger(logger)
	return logger, closer, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
