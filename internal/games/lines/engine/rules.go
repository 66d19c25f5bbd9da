package engine

import (
	"errors"
	"fmt"
)

// Reference rule values.
const (
	DefaultSize         = 9
	DefaultColors       = 5
	DefaultLineLength   = 5
	DefaultInitialBalls = 5
	DefaultBallsPerMove = 2
)

// ErrInvalidRules is returned when a rule set cannot produce a playable board.
var ErrInvalidRules = errors.New("engine: invalid rules")

// Rules holds the board parameters fixed for the lifetime of a controller.
type Rules struct {
	Size         int         // Grid dimension N
	Colors       int         // Palette size K
	LineLength   int         // Run length L that clears
	InitialBalls int         // Balls spawned when the board is created
	BallsPerMove int         // Balls spawned after every successful move
	Resolve      ResolveMode // How matched runs are cleared
}

// DefaultRules returns the classic 9x9, five color rule set.
func DefaultRules() Rules {
	return Rules{
		Size:         DefaultSize,
		Colors:       DefaultColors,
		LineLength:   DefaultLineLength,
		InitialBalls: DefaultInitialBalls,
		BallsPerMove: DefaultBallsPerMove,
		Resolve:      ResolveSequential,
	}
}

// Validate checks that the rules describe a playable board.
func (r Rules) Validate() error {
	switch {
	case r.Size < 2:
		return fmt.Errorf("%w: size %d must be at least 2", ErrInvalidRules, r.Size)
	case r.Colors < 1 || r.Colors > 255:
		return fmt.Errorf("%w: colors %d must be in [1,255]", ErrInvalidRules, r.Colors)
	case r.LineLength < 2 || r.LineLength > r.Size:
		return fmt.Errorf("%w: line length %d must be in [2,%d]", ErrInvalidRules, r.LineLength, r.Size)
	case r.InitialBalls < 0 || r.InitialBalls > r.Size*r.Size:
		return fmt.Errorf("%w: initial balls %d must be in [0,%d]", ErrInvalidRules, r.InitialBalls, r.Size*r.Size)
	case r.BallsPerMove < 0:
		return fmt.Errorf("%w: balls per move %d must not be negative", ErrInvalidRules, r.BallsPerMove)
	case r.Resolve != "" && r.Resolve != ResolveSequential && r.Resolve != ResolveCollect:
		return fmt.Errorf("%w: unknown resolve mode %q", ErrInvalidRules, r.Resolve)
	}
	return nil
}
