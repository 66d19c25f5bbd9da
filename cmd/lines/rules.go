package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule configuration",
	Long: `Load the rules the way 'lines play' does and print them as YAML.
The output can be saved to ~/.lines/configs/lines.yaml and edited.

Search order:
  --config path, ~/.lines/configs/lines.yaml, ./configs/lines.yaml,
  then the built-in defaults.

Examples:
  lines rules
  lines rules --config ./big-board.yaml
  lines rules > ~/.lines/configs/lines.yaml`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
}

func runRules(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadLines(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
