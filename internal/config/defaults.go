package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

//go:embed defaults/lines.yaml
var defaultLinesYAML []byte

// DefaultLinesConfig returns the classic rule set.
func DefaultLinesConfig() LinesConfig {
	return FromRules(engine.DefaultRules())
}
