package tui

import (
	"math"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// Board glyphs.
const (
	WallGlyph    = '█'
	MoverGlyph   = '▓'
	HoleGlyph    = '○'
	CoinGlyph    = '•'
	LifeGlyph    = '♥'
	PowerupGlyph = '◆'
	GoalGlyph    = '◎'
	BallGlyph    = '●'
	TrailGlyph   = '·'
	ZoneGlyph    = '░'
)

// trailVisibleAlpha hides samples that have nearly faded so the tail
// does not smear across the whole corridor.
const trailVisibleAlpha = 0.25

// Board projects the level's continuous world space onto a terminal
// cell grid. Terminal cells are about twice as tall as wide, so the
// vertical scale doubles the horizontal one to keep the maze square.
type Board struct {
	cellW float64 // world units per cell, horizontally
	cellH float64 // world units per cell, vertically
	cols  int
	rows  int
}

// NewBoard fits the level inside the available character area.
func NewBoard(def *maze.Definition, availCols, availRows int) Board {
	if availCols < 10 {
		availCols = 10
	}
	if availRows < 5 {
		availRows = 5
	}
	scale := max(def.Width/float64(availCols), def.Height/(2*float64(availRows)))
	b := Board{cellW: scale, cellH: 2 * scale}
	b.cols = int(math.Ceil(def.Width / b.cellW))
	b.rows = int(math.Ceil(def.Height / b.cellH))
	return b
}

// Cols returns the grid width in character cells.
func (b Board) Cols() int { return b.cols }

// Rows returns the grid height in character cells.
func (b Board) Rows() int { return b.rows }

// CellOf maps a world point to its grid cell, clamped to the board.
func (b Board) CellOf(p core.Vec) (col, row int) {
	col = core.ClampI(int(p.X/b.cellW), 0, b.cols-1)
	row = core.ClampI(int(p.Y/b.cellH), 0, b.rows-1)
	return col, row
}

// Draw renders the definition plus the live state into the screen
// buffer. The buffer must be at least Cols x Rows; the ball is drawn
// last so it always stays visible.
func (b Board) Draw(s *core.Screen, def *maze.Definition, st *game.LevelState, th Theme) {
	s.Clear()

	for _, z := range def.SpeedZones {
		color := th.ZoneFast
		if z.Kind == maze.ZoneSlow {
			color = th.ZoneSlow
		}
		b.fillRect(s, z.Rect, ZoneGlyph, color)
	}
	for _, w := range def.Walls {
		b.fillRect(s, w, WallGlyph, th.Wall)
	}
	for _, mw := range def.MovingWalls {
		b.fillRect(s, mw.RectAt(st.GameTime), MoverGlyph, th.Mover)
	}
	for _, h := range def.Holes {
		b.fillCircle(s, h.Pos, h.Radius, HoleGlyph, th.Hole)
	}
	for _, p := range def.BouncePads {
		b.fillRect(s, p.Rect, padGlyph(p.Direction), th.Pad)
	}
	b.fillCircle(s, def.Goal, def.GoalRadius, GoalGlyph, th.Goal)

	for _, c := range st.Coins {
		col, row := b.CellOf(c.Pos)
		s.SetCell(col, row, CoinGlyph, th.Coin)
	}
	for _, l := range st.Lives {
		col, row := b.CellOf(l.Pos)
		s.SetCell(col, row, LifeGlyph, th.Life)
	}
	for _, p := range st.Powerups {
		if p.Collected {
			continue
		}
		col, row := b.CellOf(p.Spawn.Pos)
		s.SetCell(col, row, PowerupGlyph, powerupColor(p.Spawn.Type))
	}

	for _, t := range st.Trail {
		if t.Alpha < trailVisibleAlpha {
			continue
		}
		col, row := b.CellOf(t.Pos)
		if s.Get(col, row) == ' ' {
			s.SetCell(col, row, TrailGlyph, th.Trail)
		}
	}

	col, row := b.CellOf(st.Ball.Pos)
	s.SetCell(col, row, BallGlyph, th.Ball)
}

// fillRect paints every cell the rectangle covers. Thin rectangles
// still get at least one cell so walls never vanish.
func (b Board) fillRect(s *core.Screen, r core.Rect, glyph rune, color core.Color) {
	c0 := int(r.X / b.cellW)
	r0 := int(r.Y / b.cellH)
	c1 := int(math.Ceil(r.Right()/b.cellW)) - 1
	r1 := int(math.Ceil(r.Bottom()/b.cellH)) - 1
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			s.SetCell(col, row, glyph, color)
		}
	}
}

// fillCircle paints every cell whose center lies inside the circle,
// plus the center cell itself for circles thinner than a cell.
func (b Board) fillCircle(s *core.Screen, c core.Vec, rad float64, glyph rune, color core.Color) {
	c0 := int((c.X - rad) / b.cellW)
	r0 := int((c.Y - rad) / b.cellH)
	c1 := int(math.Ceil((c.X + rad) / b.cellW))
	r1 := int(math.Ceil((c.Y + rad) / b.cellH))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			center := core.V((float64(col)+0.5)*b.cellW, (float64(row)+0.5)*b.cellH)
			if core.Dist(center, c) <= rad {
				s.SetCell(col, row, glyph, color)
			}
		}
	}
	col, row := b.CellOf(c)
	s.SetCell(col, row, glyph, color)
}

func padGlyph(d maze.PadDirection) rune {
	switch d {
	case maze.PadUp:
		return '▲'
	case maze.PadDown:
		return '▼'
	case maze.PadLeft:
		return '◀'
	default:
		return '▶'
	}
}

func powerupColor(t maze.PowerupType) core.Color {
	switch t {
	case maze.PowerupShield:
		return core.ColorBrightCyan
	case maze.PowerupMagnet:
		return core.ColorMagenta
	case maze.PowerupSlowMotion:
		return core.ColorBrightBlue
	case maze.PowerupShrink:
		return core.ColorBrightGreen
	case maze.PowerupGhost:
		return core.ColorBrightWhite
	case maze.PowerupDoubleCoins:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// drawOverlayLines writes centered text lines into the middle of the
// screen buffer, on top of whatever the board drew.
func drawOverlayLines(s *core.Screen, lines []string, color core.Color) {
	start := s.Height()/2 - len(lines)/2
	for i, line := range lines {
		s.DrawTextCentered(start+i, line, color)
	}
}
