// Package config provides YAML-based rule configuration loading
// for the Lines game.
package config

import (
	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

// LinesConfig contains all configuration for the Lines game.
type LinesConfig struct {
	Board BoardConfig `yaml:"board"`
	Rules RulesConfig `yaml:"rules"`
}

// BoardConfig defines the board shape and palette.
type BoardConfig struct {
	Size   int `yaml:"size"`
	Colors int `yaml:"colors"`
}

// RulesConfig defines the clearing and spawning rules.
type RulesConfig struct {
	LineLength   int    `yaml:"line_length"`
	InitialBalls int    `yaml:"initial_balls"`
	BallsPerMove int    `yaml:"balls_per_move"`
	Resolve      string `yaml:"resolve"` // "sequential" or "collect"
}

// EngineRules converts the configuration to engine rules.
func (c LinesConfig) EngineRules() engine.Rules {
	return engine.Rules{
		Size:         c.Board.Size,
		Colors:       c.Board.Colors,
		LineLength:   c.Rules.LineLength,
		InitialBalls: c.Rules.InitialBalls,
		BallsPerMove: c.Rules.BallsPerMove,
		Resolve:      engine.ResolveMode(c.Rules.Resolve),
	}
}

// Validate checks that the configuration describes a playable board.
func (c LinesConfig) Validate() error {
	return c.EngineRules().Validate()
}

// FromRules builds a configuration from engine rules.
func FromRules(r engine.Rules) LinesConfig {
	return LinesConfig{
		Board: BoardConfig{
			Size:   r.Size,
			Colors: r.Colors,
		},
		Rules: RulesConfig{
			LineLength:   r.LineLength,
			InitialBalls: r.InitialBalls,
			BallsPerMove: r.BallsPerMove,
			Resolve:      string(r.Resolve),
		},
	}
}
