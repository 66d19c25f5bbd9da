package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/lines/layouts"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts <dir>",
	Short: "List starting layouts in a directory",
	Long: `Scans a directory tree for layout files (.yaml, .yml) and prints the
valid ones. Files that fail to parse or validate against the current
rules are reported and skipped.

Examples:
  lines layouts ./layouts
  lines play --layout ./layouts/almost.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runLayouts,
}

func init() {
	layoutsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
}

func runLayouts(cmd *cobra.Command, args []string) {
	all, err := layouts.NewLoader(args[0]).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No layouts found.")
		return
	}

	cfg, err := config.LoadLines(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules := cfg.EngineRules()

	maxIDLen := len("ID")
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Size", "Balls", "Name")
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")
	for _, l := range all {
		if _, err := l.Fit(rules); err != nil {
			fmt.Printf("  %-*s  skipped: %v\n", maxIDLen, l.ID, err)
			continue
		}
		fmt.Printf("  %-*s  %-5s  %-5d  %s\n", maxIDLen, l.ID,
			fmt.Sprintf("%dx%d", l.Size(), l.Size()), l.ToGrid().CountOccupied(), l.Name)
	}
}
