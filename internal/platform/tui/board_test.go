package tui

import (
	"testing"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

func testDefinition(t *testing.T) *maze.Definition {
	t.Helper()
	def, err := maze.Generate(1)
	if err != nil {
		t.Fatalf("Generate(1) failed: %v", err)
	}
	return def
}

// testLevelState runs a real session for a few frames so the drawn
// state carries a ball, coins and a trail.
func testLevelState(t *testing.T, def *maze.Definition) *game.LevelState {
	t.Helper()
	session, err := game.NewSession(def, game.DefaultPhysicsConfig(), nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := session.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		session.Tick(frameDt, core.Tilt{X: 0.3})
	}
	return session.LevelState()
}

func TestBoardFitsAvailableArea(t *testing.T) {
	def := testDefinition(t)

	for _, size := range []struct{ cols, rows int }{{78, 20}, {120, 35}, {40, 12}} {
		b := NewBoard(def, size.cols, size.rows)

		if b.Cols() <= 0 || b.Cols() > size.cols {
			t.Errorf("Board cols should fit in %d, got %d", size.cols, b.Cols())
		}
		if b.Rows() <= 0 || b.Rows() > size.rows {
			t.Errorf("Board rows should fit in %d, got %d", size.rows, b.Rows())
		}
		if b.cellH != 2*b.cellW {
			t.Errorf("Cell height should be twice the width, got %.2f vs %.2f", b.cellH, b.cellW)
		}
	}
}

func TestBoardTinyTerminalClamped(t *testing.T) {
	def := testDefinition(t)
	b := NewBoard(def, 0, 0)

	if b.Cols() <= 0 || b.Cols() > 10 {
		t.Errorf("Tiny terminal should clamp to at most 10 cols, got %d", b.Cols())
	}
	if b.Rows() <= 0 || b.Rows() > 5 {
		t.Errorf("Tiny terminal should clamp to at most 5 rows, got %d", b.Rows())
	}
}

func TestCellOfClampsToGrid(t *testing.T) {
	def := testDefinition(t)
	b := NewBoard(def, 78, 20)

	col, row := b.CellOf(core.Vec{X: -10, Y: -10})
	if col != 0 || row != 0 {
		t.Errorf("Points left of the board should clamp to (0,0), got (%d,%d)", col, row)
	}

	col, row = b.CellOf(core.Vec{X: def.Width + 10, Y: def.Height + 10})
	if col != b.Cols()-1 || row != b.Rows()-1 {
		t.Errorf("Points past the board should clamp to (%d,%d), got (%d,%d)",
			b.Cols()-1, b.Rows()-1, col, row)
	}
}

func TestBoardDrawsLevel(t *testing.T) {
	def := testDefinition(t)
	st := testLevelState(t, def)

	b := NewBoard(def, 78, 20)
	screen := core.NewScreen(b.Cols(), b.Rows())
	b.Draw(screen, def, st, DefaultTheme())

	// Count what landed on the grid
	walls, goals, coins := 0, 0, 0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			switch screen.Get(col, row) {
			case WallGlyph:
				walls++
			case GoalGlyph:
				goals++
			case CoinGlyph:
				coins++
			}
		}
	}

	if walls == 0 {
		t.Error("Draw should paint the border walls")
	}
	if goals == 0 {
		t.Error("Draw should paint the goal")
	}
	if len(st.Coins) > 0 && coins == 0 {
		t.Error("Draw should paint the uncollected coins")
	}

	// The ball is drawn last so it is never hidden
	col, row := b.CellOf(st.Ball.Pos)
	if screen.Get(col, row) != BallGlyph {
		t.Errorf("Ball should be visible at its cell, got %q", screen.Get(col, row))
	}
}

func TestThinRectsStillPaint(t *testing.T) {
	def := testDefinition(t)
	b := NewBoard(def, 30, 10) // coarse cells, walls thinner than one

	screen := core.NewScreen(b.Cols(), b.Rows())
	b.fillRect(screen, core.NewRect(def.Width/2, def.Height/2, 2, 2), WallGlyph, core.ColorWhite)

	painted := 0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if screen.Get(col, row) == WallGlyph {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("Rects thinner than a cell should still paint at least one cell")
	}
}
