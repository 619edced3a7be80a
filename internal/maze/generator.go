package maze

import (
	"errors"
	"fmt"
	"math"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
)

// Canvas and placement tuning. All values feed the deterministic layout,
// so they are fixed constants rather than configuration.
const (
	baseWidth       = 340.0
	baseHeight      = 460.0
	loopEdgeRatio   = 0.08
	placementBudget = 30

	// Walls at most this long stay static; longer interior walls may be
	// promoted to oscillating hazards.
	minMoverLength = 30.0

	fastZoneFactor = 1.015
	slowZoneFactor = 0.97
)

// ErrBadLevel rejects level numbers below one.
var ErrBadLevel = errors.New("maze: level number must be at least 1")

// Generate builds the definition for a level number. It is pure and
// deterministic: the same input always yields an identical definition.
func Generate(level int) (*Definition, error) {
	return GenerateWith(nil, level)
}

// GenerateWith runs generation against a caller-supplied random source,
// letting tests substitute a recording or replaying stream. A nil
// source uses the canonical per-level stream.
func GenerateWith(src Source, level int) (*Definition, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadLevel, level)
	}
	if src == nil {
		src = NewLevelSource(level)
	}
	g := &generator{src: src, level: level, tier: TierFor(level), targets: TargetsFor(level)}
	g.build()
	return g.def, nil
}

type generator struct {
	src     Source
	level   int
	tier    Tier
	targets Targets
	grid    *grid
	def     *Definition
	used    map[int]bool // cell index -> already hosts an entity
}

func (g *generator) build() {
	g.layout()
	g.carve()
	g.addLoops()
	g.emitWalls()
	g.placeEndpoints()
	g.placeHoles()
	g.placeCoins()
	g.placeExtraLife()
	g.placePowerups()
	g.placeBouncePads()
	g.placeSpeedZones()
	g.convertMovingWalls()
	g.computeStarTimes()
	g.def.Cells = g.grid.published()
}

// layout derives the canvas and grid geometry from the difficulty tier.
// The maze block, including its far edge walls, is centered on the
// canvas.
func (g *generator) layout() {
	t := g.tier
	width := baseWidth + float64(t.SizeBonus)
	height := baseHeight + float64(t.SizeBonus)
	cellSize := 56 - 2*float64(t.Complexity)
	cols := int((width - WallThickness) / cellSize)
	rows := int((height - WallThickness) / cellSize)
	mazeW := float64(cols)*cellSize + WallThickness
	mazeH := float64(rows)*cellSize + WallThickness

	g.def = &Definition{
		ID:         g.level,
		Name:       fmt.Sprintf("Level %d", g.level),
		Tier:       t,
		Width:      width,
		Height:     height,
		CellSize:   cellSize,
		Cols:       cols,
		Rows:       rows,
		OffsetX:    (width - mazeW) / 2,
		OffsetY:    (height - mazeH) / 2,
		BallRadius: math.Min(10, 0.28*cellSize),
		GoalRadius: 16 - 0.4*float64(t.Complexity),
	}
	g.grid = newGrid(cols, rows)
	g.used = make(map[int]bool)
}

// carve cuts a perfect maze by recursive backtracking from the
// bottom-left cell: every cell ends up connected to every other by
// exactly one path. Loop edges are layered on afterwards.
func (g *generator) carve() {
	start := g.grid.at(0, g.grid.rows-1)
	start.visited = true
	stack := []*Cell{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		nbs := g.grid.unvisitedNeighbors(cur)
		if len(nbs) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := nbs[g.intn(len(nbs))]
		g.grid.removeWallBetween(cur, next)
		next.visited = true
		stack = append(stack, next)
	}
}

// addLoops knocks out extra walls (roughly 8% of the cell count) to
// open alternate routes. Removing a wall between two already-connected
// cells cannot disconnect the maze.
func (g *generator) addLoops() {
	attempts := int(float64(g.grid.cols*g.grid.rows) * loopEdgeRatio)
	for i := 0; i < attempts; i++ {
		c := g.grid.at(g.intn(g.grid.cols), g.intn(g.grid.rows))
		d := direction(g.intn(4))
		n := g.grid.neighbor(c, d)
		if n == nil || !g.grid.wallBetween(c, d) {
			continue
		}
		g.grid.removeWallBetween(c, n)
	}
}

// emitWalls converts wall flags into collider rectangles. Per-cell top
// and left walls cover the grid including the top and left boundary;
// the outermost column and row contribute their right and bottom walls;
// corner posts plug the gaps where perpendicular walls meet end to end.
func (g *generator) emitWalls() {
	d := g.def
	cs := d.CellSize
	lineX := func(i int) float64 { return d.OffsetX + float64(i)*cs }
	lineY := func(j int) float64 { return d.OffsetY + float64(j)*cs }

	for r := 0; r < d.Rows; r++ {
		for c := 0; c < d.Cols; c++ {
			cell := g.grid.at(c, r)
			if cell.Top {
				d.Walls = append(d.Walls, core.NewRect(lineX(c), lineY(r), cs, WallThickness))
			}
			if cell.Left {
				d.Walls = append(d.Walls, core.NewRect(lineX(c), lineY(r), WallThickness, cs))
			}
			if c == d.Cols-1 && cell.Right {
				d.Walls = append(d.Walls, core.NewRect(lineX(c+1), lineY(r), WallThickness, cs))
			}
			if r == d.Rows-1 && cell.Bottom {
				d.Walls = append(d.Walls, core.NewRect(lineX(c), lineY(r+1), cs, WallThickness))
			}
		}
	}

	for j := 0; j <= d.Rows; j++ {
		for i := 0; i <= d.Cols; i++ {
			if g.intersectionOccupied(i, j) {
				d.Walls = append(d.Walls, core.NewRect(lineX(i), lineY(j), WallThickness, WallThickness))
			}
		}
	}
}

// intersectionOccupied reports whether any wall segment touches the
// grid intersection (i, j).
func (g *generator) intersectionOccupied(i, j int) bool {
	cols, rows := g.grid.cols, g.grid.rows
	horiz := func(c int) bool {
		if c < 0 || c >= cols {
			return false
		}
		if j < rows {
			return g.grid.at(c, j).Top
		}
		return g.grid.at(c, rows-1).Bottom
	}
	vert := func(r int) bool {
		if r < 0 || r >= rows {
			return false
		}
		if i < cols {
			return g.grid.at(i, r).Left
		}
		return g.grid.at(cols-1, r).Right
	}
	return horiz(i-1) || horiz(i) || vert(j-1) || vert(j)
}

// placeEndpoints pins the run: start at the bottom-left cell center,
// goal at the top-right cell center.
func (g *generator) placeEndpoints() {
	d := g.def
	d.Start = d.CellCenter(0, d.Rows-1)
	d.Goal = d.CellCenter(d.Cols-1, 0)
	g.used[g.cellIndex(0, d.Rows-1)] = true
	g.used[g.cellIndex(d.Cols-1, 0)] = true
}

func (g *generator) cellIndex(col, row int) int {
	return row*g.grid.cols + col
}

// intn draws the next stream value as an integer in [0, n).
func (g *generator) intn(n int) int {
	return int(g.src.Float64() * float64(n))
}

// randomCell draws a uniformly random grid position.
func (g *generator) randomCell() (int, int) {
	return g.intn(g.grid.cols), g.intn(g.grid.rows)
}

// placeHoles rejection-samples hazards at random cell centers, keeping
// clear of the endpoints and of each other. A hole that finds no room
// within its attempt budget is dropped silently.
func (g *generator) placeHoles() {
	d := g.def
	cs := d.CellSize
	for i := 0; i < g.targets.Holes; i++ {
		for attempt := 0; attempt < placementBudget; attempt++ {
			col, row := g.randomCell()
			if g.used[g.cellIndex(col, row)] {
				continue
			}
			p := d.CellCenter(col, row)
			if core.Dist(p, d.Start) < 1.5*cs || core.Dist(p, d.Goal) < 1.5*cs {
				continue
			}
			if g.nearHole(p, cs) {
				continue
			}
			d.Holes = append(d.Holes, Hole{Pos: p, Radius: HoleRadius})
			g.used[g.cellIndex(col, row)] = true
			break
		}
	}
}

func (g *generator) nearHole(p core.Vec, minDist float64) bool {
	for _, h := range g.def.Holes {
		if core.Dist(p, h.Pos) < minDist {
			return true
		}
	}
	return false
}

// placeCoins fills the coin quota dead-ends first: dead-end cells are
// shuffled through the stream and taken while they respect the spacing
// rules, then the remainder is rejection-sampled at random cell centers.
func (g *generator) placeCoins() {
	d := g.def
	cs := d.CellSize
	target := g.targets.Coins

	deadEnds := g.grid.deadEnds()
	g.shuffleCells(deadEnds)
	for _, cell := range deadEnds {
		if len(d.Coins) >= target {
			break
		}
		if g.used[g.cellIndex(cell.Col, cell.Row)] {
			continue
		}
		p := d.CellCenter(cell.Col, cell.Row)
		if !g.coinFits(p, cs) {
			continue
		}
		d.Coins = append(d.Coins, p)
		g.used[g.cellIndex(cell.Col, cell.Row)] = true
	}

	for len(d.Coins) < target {
		placed := false
		for attempt := 0; attempt < placementBudget; attempt++ {
			col, row := g.randomCell()
			if g.used[g.cellIndex(col, row)] {
				continue
			}
			p := d.CellCenter(col, row)
			if !g.coinFits(p, cs) {
				continue
			}
			d.Coins = append(d.Coins, p)
			g.used[g.cellIndex(col, row)] = true
			placed = true
			break
		}
		if !placed {
			break
		}
	}
}

// coinFits applies the coin spacing rules: one cell size from the
// endpoints, 0.8 cell sizes from every other coin.
func (g *generator) coinFits(p core.Vec, cs float64) bool {
	if core.Dist(p, g.def.Start) < cs || core.Dist(p, g.def.Goal) < cs {
		return false
	}
	for _, c := range g.def.Coins {
		if core.Dist(p, c) < 0.8*cs {
			return false
		}
	}
	return true
}

// shuffleCells is a Fisher-Yates shuffle driven by the level stream.
func (g *generator) shuffleCells(cells []*Cell) {
	for i := len(cells) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
}

// placeExtraLife rolls a single bonus life. The chance grows with the
// level; the pickup only spawns in a free dead end well away from the
// endpoints.
func (g *generator) placeExtraLife() {
	d := g.def
	chance := math.Min(0.3, 0.05+float64(g.level)*0.003)
	if g.src.Float64() >= chance {
		return
	}
	cs := d.CellSize
	var candidates []*Cell
	for _, cell := range g.grid.deadEnds() {
		if g.used[g.cellIndex(cell.Col, cell.Row)] {
			continue
		}
		p := d.CellCenter(cell.Col, cell.Row)
		if core.Dist(p, d.Start) < 2*cs || core.Dist(p, d.Goal) < 2*cs {
			continue
		}
		candidates = append(candidates, cell)
	}
	if len(candidates) == 0 {
		return
	}
	cell := candidates[g.intn(len(candidates))]
	d.Lives = append(d.Lives, d.CellCenter(cell.Col, cell.Row))
	g.used[g.cellIndex(cell.Col, cell.Row)] = true
}

// placePowerups drops typed pickups once the roster opens at level 6.
// Higher levels unlock more types and more simultaneous spawns.
func (g *generator) placePowerups() {
	if g.level < powerupMinLevel {
		return
	}
	d := g.def
	cs := d.CellSize
	roster := powerupRoster(g.level)
	count := g.targets.Powerups
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < placementBudget; attempt++ {
			col, row := g.randomCell()
			if g.used[g.cellIndex(col, row)] {
				continue
			}
			p := d.CellCenter(col, row)
			if core.Dist(p, d.Start) < 1.5*cs || core.Dist(p, d.Goal) < 1.5*cs {
				continue
			}
			if g.nearHole(p, cs) || g.nearPowerup(p, cs) {
				continue
			}
			d.Powerups = append(d.Powerups, PowerupSpawn{
				Pos:    p,
				Type:   roster[g.intn(len(roster))],
				Radius: PowerupRadius,
			})
			g.used[g.cellIndex(col, row)] = true
			break
		}
	}
}

func (g *generator) nearPowerup(p core.Vec, minDist float64) bool {
	for _, pu := range g.def.Powerups {
		if core.Dist(p, pu.Pos) < minDist {
			return true
		}
	}
	return false
}

// powerupRoster lists the pickup types unlocked at a level, in unlock
// order: shield 6, magnet 15, slow motion 25, shrink 35, ghost 45,
// double coins 55.
func powerupRoster(level int) []PowerupType {
	roster := []PowerupType{PowerupShield}
	unlocks := []struct {
		level int
		typ   PowerupType
	}{
		{15, PowerupMagnet},
		{25, PowerupSlowMotion},
		{35, PowerupShrink},
		{45, PowerupGhost},
		{55, PowerupDoubleCoins},
	}
	for _, u := range unlocks {
		if level >= u.level {
			roster = append(roster, u.typ)
		}
	}
	return roster
}

// placeBouncePads adds directional launchers from level 11 on.
func (g *generator) placeBouncePads() {
	if g.level < padMinLevel {
		return
	}
	d := g.def
	cs := d.CellSize
	count := g.targets.BouncePads
	side := 0.6 * cs
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < placementBudget; attempt++ {
			col, row := g.randomCell()
			if g.used[g.cellIndex(col, row)] {
				continue
			}
			p := d.CellCenter(col, row)
			if core.Dist(p, d.Start) < 1.5*cs || core.Dist(p, d.Goal) < 1.5*cs {
				continue
			}
			if g.nearHole(p, cs) || g.nearPad(p, cs) {
				continue
			}
			d.BouncePads = append(d.BouncePads, BouncePad{
				Rect:      core.NewRect(p.X-side/2, p.Y-side/2, side, side),
				Direction: PadDirection(g.intn(4)),
				Force:     7 + float64(g.intn(4)),
			})
			g.used[g.cellIndex(col, row)] = true
			break
		}
	}
}

func (g *generator) nearPad(p core.Vec, minDist float64) bool {
	for _, pad := range g.def.BouncePads {
		if core.Dist(p, pad.Rect.Center()) < minDist {
			return true
		}
	}
	return false
}

// placeSpeedZones adds fast and slow patches from level 16 on.
func (g *generator) placeSpeedZones() {
	if g.level < zoneMinLevel {
		return
	}
	d := g.def
	cs := d.CellSize
	count := g.targets.SpeedZones
	side := 1.2 * cs
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < placementBudget; attempt++ {
			col, row := g.randomCell()
			if g.used[g.cellIndex(col, row)] {
				continue
			}
			p := d.CellCenter(col, row)
			if core.Dist(p, d.Start) < 1.5*cs || core.Dist(p, d.Goal) < 1.5*cs {
				continue
			}
			if g.nearHole(p, cs) || g.nearZone(p, 1.5*cs) {
				continue
			}
			kind := ZoneFast
			factor := fastZoneFactor
			if g.src.Float64() < 0.5 {
				kind = ZoneSlow
				factor = slowZoneFactor
			}
			d.SpeedZones = append(d.SpeedZones, SpeedZone{
				Rect:       core.NewRect(p.X-side/2, p.Y-side/2, side, side),
				Kind:       kind,
				Multiplier: factor,
			})
			g.used[g.cellIndex(col, row)] = true
			break
		}
	}
}

func (g *generator) nearZone(p core.Vec, minDist float64) bool {
	for _, z := range g.def.SpeedZones {
		if core.Dist(p, z.Rect.Center()) < minDist {
			return true
		}
	}
	return false
}

// convertMovingWalls promotes interior wall rectangles into oscillating
// hazards from level 21 on. Donors leave the static list; border walls
// are never donors so the outer boundary stays closed.
func (g *generator) convertMovingWalls() {
	if g.level < moverMinLevel {
		return
	}
	d := g.def
	count := min(1+(g.level-moverMinLevel)/12, 4)

	var candidates []int
	for i, w := range d.Walls {
		if w.W <= minMoverLength && w.H <= minMoverLength {
			continue
		}
		if g.onBorder(w) {
			continue
		}
		candidates = append(candidates, i)
	}

	taken := make(map[int]bool)
	for i := 0; i < count && len(candidates) > 0; i++ {
		pick := g.intn(len(candidates))
		idx := candidates[pick]
		candidates = append(candidates[:pick], candidates[pick+1:]...)
		w := d.Walls[idx]
		axis := AxisY
		if w.H > w.W {
			axis = AxisX
		}
		d.MovingWalls = append(d.MovingWalls, MovingWall{
			Rect:  w,
			Axis:  axis,
			Range: 0.75 * d.CellSize,
			Speed: 30 + g.src.Float64()*40,
			Phase: g.src.Float64() * 2 * math.Pi,
		})
		taken[idx] = true
	}
	if len(taken) == 0 {
		return
	}
	kept := d.Walls[:0]
	for i, w := range d.Walls {
		if !taken[i] {
			kept = append(kept, w)
		}
	}
	d.Walls = kept
}

// onBorder reports whether a wall rect lies on one of the four outer
// boundary lines.
func (g *generator) onBorder(w core.Rect) bool {
	d := g.def
	right := d.OffsetX + float64(d.Cols)*d.CellSize
	bottom := d.OffsetY + float64(d.Rows)*d.CellSize
	if w.W >= w.H {
		return w.Y == d.OffsetY || w.Y == bottom
	}
	return w.X == d.OffsetX || w.X == right
}

// computeStarTimes derives the 1/2/3-star thresholds. The base window
// widens with the level number and the tier complexity.
func (g *generator) computeStarTimes() {
	base := int64(12000 + g.level*600 + g.tier.Complexity*1500)
	g.def.StarTimes = [3]int64{
		base,
		int64(float64(base) * 0.65),
		int64(float64(base) * 0.40),
	}
}
