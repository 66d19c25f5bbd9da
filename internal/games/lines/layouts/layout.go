// Package layouts loads fixed starting positions for Lines from YAML.
// A layout replaces the random initial deal; play continues with the
// usual spawning afterwards.
package layouts

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lines/internal/games/lines/engine"
)

// ErrInvalidLayout is returned for layouts that cannot form a board.
var ErrInvalidLayout = errors.New("layouts: invalid layout")

// yamlLayout is the file format. Rows use '.' for an empty cell and the
// digits 1-9 for ball colors.
type yamlLayout struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Rows        []string `yaml:"rows"`
}

// Layout is a parsed starting position.
type Layout struct {
	ID          string
	Name        string
	Description string
	Rows        []string
	FilePath    string
}

// Parse decodes and checks a YAML layout.
func Parse(data []byte) (Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("layouts: cannot parse: %w", err)
	}

	l := Layout{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Rows:        make([]string, len(yl.Rows)),
	}
	for i, r := range yl.Rows {
		l.Rows[i] = strings.TrimSpace(r)
	}
	if l.Name == "" {
		l.Name = l.ID
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Size returns the board dimension.
func (l Layout) Size() int {
	return len(l.Rows)
}

// Validate checks that the rows form a square board of known cells.
func (l Layout) Validate() error {
	n := len(l.Rows)
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLayout)
	}
	if n < 2 {
		return fmt.Errorf("%w: %s has %d rows, need at least 2", ErrInvalidLayout, l.ID, n)
	}
	for i, row := range l.Rows {
		if len(row) != n {
			return fmt.Errorf("%w: %s row %d has %d cells, want %d", ErrInvalidLayout, l.ID, i, len(row), n)
		}
		for j, ch := range row {
			if ch != '.' && (ch < '1' || ch > '9') {
				return fmt.Errorf("%w: %s cell (%d,%d) is %q", ErrInvalidLayout, l.ID, i, j, ch)
			}
		}
	}
	return nil
}

// MaxColor returns the highest ball color used.
func (l Layout) MaxColor() int {
	maxColor := 0
	for _, row := range l.Rows {
		for _, ch := range row {
			if ch != '.' {
				maxColor = max(maxColor, int(ch-'0'))
			}
		}
	}
	return maxColor
}

// ToGrid builds the board described by the layout.
func (l Layout) ToGrid() *engine.Grid {
	g := engine.NewGrid(l.Size())
	for r, row := range l.Rows {
		for c, ch := range row {
			if ch != '.' {
				g.Place(engine.At(r, c), engine.Color(ch-'0'))
			}
		}
	}
	return g
}

// Fit adapts rules to the layout: the board size follows the layout and the
// palette grows to cover every color it uses.
func (l Layout) Fit(rules engine.Rules) (engine.Rules, error) {
	rules.Size = l.Size()
	rules.Colors = max(rules.Colors, l.MaxColor())
	if err := rules.Validate(); err != nil {
		return rules, fmt.Errorf("layouts: %s: %w", l.ID, err)
	}
	return rules, nil
}
