// Package registry keeps the set of playable variants. Variants register
// from init() so the CLI and menu can list and create them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-lines/internal/core"
)

// ErrUnknownVariant is returned by Create for an unregistered ID.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is the interface the platform drives. Implementations are pure
// logic: the platform feeds one InputFrame per tick and paints whatever
// Render leaves in the screen buffer.
type Game interface {
	// ID identifies the variant in the CLI and in stored results.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh board sized for cfg and seeded from cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies the input collected during one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the tallies the platform records.
	State() core.GameState
}

// Describer is implemented by variants that carry a one-line summary of
// their rules.
type Describer interface {
	Description() string
}

// Info describes a registered variant.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new, not yet reset, game.
type Factory func() Game

var (
	mu       sync.RWMutex
	variants = make(map[string]entry)
)

type entry struct {
	factory Factory
	info    Info
}

// Register adds a variant. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	g := f()
	info := Info{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	variants[id] = entry{factory: f, info: info}
}

// List returns every registered variant sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(variants))
	for _, e := range variants {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the variant with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := variants[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
