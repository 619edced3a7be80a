// Package levels serves generated level definitions to the platform.
// Generation is deterministic but not free, so the catalog builds each
// level once and shares the immutable result with every caller.
package levels

import (
	"fmt"
	"sync"

	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// MaxLevel is the range menus offer. Generation itself works beyond it
// (difficulty saturates at the top tier), but progression stops here.
const MaxLevel = 100

// Meta summarizes a level for menus and tooling without handing out the
// full definition.
type Meta struct {
	Level     int
	Tier      string
	Cols      int
	Rows      int
	Holes     int
	Coins     int
	Powerups  int
	Pads      int
	Zones     int
	Movers    int
	StarTimes [3]int64
}

// Catalog hands out level definitions, generating each one on first
// request. Cached definitions are immutable; the pointer is shared.
// Safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	cache map[int]*maze.Definition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{cache: make(map[int]*maze.Definition)}
}

// Get returns the definition for a level, generating it on first use.
func (c *Catalog) Get(level int) (*maze.Definition, error) {
	c.mu.RLock()
	def, ok := c.cache[level]
	c.mu.RUnlock()
	if ok {
		return def, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if def, ok := c.cache[level]; ok {
		return def, nil
	}
	def, err := maze.Generate(level)
	if err != nil {
		return nil, fmt.Errorf("levels: level %d: %w", level, err)
	}
	c.cache[level] = def
	return def, nil
}

// Meta summarizes one level, generating it if needed.
func (c *Catalog) Meta(level int) (Meta, error) {
	def, err := c.Get(level)
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		Level:     def.ID,
		Tier:      def.Tier.Name,
		Cols:      def.Cols,
		Rows:      def.Rows,
		Holes:     len(def.Holes),
		Coins:     len(def.Coins),
		Powerups:  len(def.Powerups),
		Pads:      len(def.BouncePads),
		Zones:     len(def.SpeedZones),
		Movers:    len(def.MovingWalls),
		StarTimes: def.StarTimes,
	}, nil
}

// Range summarizes the levels from lo to hi inclusive.
func (c *Catalog) Range(lo, hi int) ([]Meta, error) {
	if lo < 1 || hi < lo {
		return nil, fmt.Errorf("levels: bad range %d..%d", lo, hi)
	}
	out := make([]Meta, 0, hi-lo+1)
	for level := lo; level <= hi; level++ {
		m, err := c.Meta(level)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Cached reports how many levels have been generated so far.
func (c *Catalog) Cached() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
