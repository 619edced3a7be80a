package game

import (
	"math"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// PhysicsConfig is the immutable tuning table for the simulator.
// Gravity feeds the tilt response, friction and bounce seed each new
// ball, max speed caps velocity magnitude.
type PhysicsConfig struct {
	Gravity     float64
	Friction    float64
	Bounce      float64
	MaxSpeed    float64
	Sensitivity float64
}

// DefaultPhysicsConfig returns the stock tuning.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:     0.55,
		Friction:    0.93,
		Bounce:      0.55,
		MaxSpeed:    11,
		Sensitivity: 1.0,
	}
}

// MaxFrameDelta caps a single step, in seconds, so the integration
// stays stable when the host resumes after a stall (tab switch,
// suspend). Longer real gaps simply simulate less time.
const MaxFrameDelta = 0.05

const (
	// holeFairFactor shrinks hole capture below the drawn radius so a
	// grazing pass does not read as a fall.
	holeFairFactor = 0.85
	// bounceBoost livens wall rebounds beyond plain restitution.
	bounceBoost      = 1.2
	escapeSpeed      = 6.0  // shield-burst launch, pixels per frame
	magnetPullFactor = 0.04 // coin pull per pixel of field depth
)

// SimpleRNG is a tiny deterministic stream for bounce perturbation.
// It is separate from the maze generator's stream so replaying a level
// with the same seed replays the same rebounds. Knuth's MMIX constants.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG seeds a stream. Equal seeds give equal streams.
func NewSimpleRNG(seed int64) *SimpleRNG {
	return &SimpleRNG{state: uint64(seed)}
}

func (r *SimpleRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns the next draw in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// State exposes the raw stream position for determinism snapshots.
func (r *SimpleRNG) State() uint64 { return r.state }

// Engine advances a LevelState one frame at a time against an immutable
// definition. Its only mutable state is the perturbation stream, so one
// engine serves every restart of its level.
type Engine struct {
	def       *maze.Definition
	cfg       PhysicsConfig
	durations EffectDurations
	rng       *SimpleRNG
}

// NewEngine validates the definition and prepares a simulator. An
// invalid definition is a configuration error and aborts the load.
func NewEngine(def *maze.Definition, cfg PhysicsConfig, durations EffectDurations, seed int64) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		def:       def,
		cfg:       cfg,
		durations: durations,
		rng:       NewSimpleRNG(seed),
	}, nil
}

// Definition returns the level geometry this engine simulates.
func (e *Engine) Definition() *maze.Definition { return e.def }

// Step advances the simulation by one frame. dt is the real frame delta
// in seconds, capped at MaxFrameDelta; tilt components are clamped to
// [-1, 1]. Events come back in occurrence order and are never retained
// by the engine. A fall or a goal touch ends the frame early.
func (e *Engine) Step(st *LevelState, dt float64, tilt core.Tilt) []Event {
	if dt <= 0 {
		return nil
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	tilt = tilt.Clamped()

	// Gameplay math runs on the scaled delta; the real clock does not
	// slow down, so effect timers and the level timer stay honest.
	sdt := dt * st.timeScale()
	st.elapsed += dt
	st.GameTime += sdt

	var events []Event

	st.Ball.Vel.X += tilt.X * e.cfg.Gravity * e.cfg.Sensitivity * 60 * sdt
	st.Ball.Vel.Y += tilt.Y * e.cfg.Gravity * e.cfg.Sensitivity * 60 * sdt

	// Exponential damping, frame-rate independent.
	decay := math.Pow(st.Ball.Friction, sdt*60)
	st.Ball.Vel.X *= decay
	st.Ball.Vel.Y *= decay

	if speed := st.Ball.Vel.Len(); speed > e.cfg.MaxSpeed {
		st.Ball.Vel = st.Ball.Vel.Scale(e.cfg.MaxSpeed / speed)
	}

	st.appendTrailSample()

	radius := st.effectiveRadius()
	newX := st.Ball.Pos.X + st.Ball.Vel.X*sdt*60
	newY := st.Ball.Pos.Y + st.Ball.Vel.Y*sdt*60

	hitX, hitY := e.resolveCollisions(st, &newX, &newY, radius)
	if hitX {
		st.Ball.Vel.X = -st.Ball.Vel.X * st.Ball.Bounce * bounceBoost
		st.Ball.Vel.Y += e.perturb()
		st.WallHits++
		events = append(events, WallHit{Axis: maze.AxisX})
	}
	if hitY {
		st.Ball.Vel.Y = -st.Ball.Vel.Y * st.Ball.Bounce * bounceBoost
		st.Ball.Vel.X += e.perturb()
		st.WallHits++
		events = append(events, WallHit{Axis: maze.AxisY})
	}
	st.Ball.Pos.X = newX
	st.Ball.Pos.Y = newY

	for i, h := range e.def.Holes {
		if core.Dist(st.Ball.Pos, h.Pos) < h.Radius*holeFairFactor {
			if st.shieldAvailable() {
				fromUpgrade := st.consumeShield()
				e.pushBallAway(st, h)
				events = append(events, ShieldBurst{Hole: i, FromUpgrade: fromUpgrade})
				continue
			}
			return append(events, FellInHole{Hole: i})
		}
	}

	if core.Dist(st.Ball.Pos, e.def.Goal) < e.def.GoalRadius {
		return append(events, ReachedGoal{})
	}

	events = e.collectCoins(st, radius, sdt, events)
	events = e.collectLives(st, radius, events)
	events = e.collectPowerups(st, radius, events)
	events = e.applyBouncePads(st, radius, events)

	for _, z := range e.def.SpeedZones {
		if z.Rect.Contains(st.Ball.Pos) {
			st.Ball.Vel = st.Ball.Vel.Scale(z.Multiplier)
		}
	}

	for _, t := range st.expireEffects(st.ElapsedMs()) {
		events = append(events, PowerupExpired{Type: t})
	}
	st.fadeTrail(dt)
	return events
}

// resolveCollisions slides the candidate position along the static
// walls, the moving walls at this frame's game time and the canvas
// boundary. The axes are tested and clamped independently, so the ball
// slides along any surface it presses against instead of sticking.
// Ghost effects skip the maze walls but never the outer boundary.
func (e *Engine) resolveCollisions(st *LevelState, newX, newY *float64, radius float64) (hitX, hitY bool) {
	oldY := st.Ball.Pos.Y
	if !st.ghostActive() {
		e.forEachWall(st, func(w core.Rect) {
			if w.CircleOverlaps(core.V(*newX, oldY), radius) {
				hitX = true
				if *newX < w.X+w.W/2 {
					*newX = w.X - radius
				} else {
					*newX = w.Right() + radius
				}
			}
		})
		e.forEachWall(st, func(w core.Rect) {
			if w.CircleOverlaps(core.V(*newX, *newY), radius) {
				hitY = true
				if *newY < w.Y+w.H/2 {
					*newY = w.Y - radius
				} else {
					*newY = w.Bottom() + radius
				}
			}
		})
	}

	if *newX < radius {
		*newX = radius
		hitX = true
	} else if *newX > e.def.Width-radius {
		*newX = e.def.Width - radius
		hitX = true
	}
	if *newY < radius {
		*newY = radius
		hitY = true
	} else if *newY > e.def.Height-radius {
		*newY = e.def.Height - radius
		hitY = true
	}
	return hitX, hitY
}

// forEachWall visits every collidable rectangle: static walls first,
// then moving walls evaluated at the current game time.
func (e *Engine) forEachWall(st *LevelState, fn func(core.Rect)) {
	for _, w := range e.def.Walls {
		fn(w)
	}
	for _, m := range e.def.MovingWalls {
		fn(m.RectAt(st.GameTime))
	}
}

// perturb returns a ±1 unit nudge for the axis perpendicular to a
// bounce, breaking perfectly repeating rebound loops.
func (e *Engine) perturb() float64 {
	return e.rng.Float64()*2 - 1
}

// pushBallAway rescues the ball after a shield burst: it is placed just
// outside the hole's capture ring with escape velocity pointing away.
// A dead-center fall pushes straight up.
func (e *Engine) pushBallAway(st *LevelState, h maze.Hole) {
	dir := st.Ball.Pos.Sub(h.Pos).Normalize()
	if dir.X == 0 && dir.Y == 0 {
		dir = core.V(0, -1)
	}
	safe := h.Radius*holeFairFactor + st.effectiveRadius()
	st.Ball.Pos = h.Pos.Add(dir.Scale(safe))
	st.Ball.Vel = dir.Scale(escapeSpeed)
}

// collectCoins applies the magnet pull, then picks up any coin whose
// disc strictly overlaps the ball. Picked coins leave the slice.
func (e *Engine) collectCoins(st *LevelState, radius, sdt float64, events []Event) []Event {
	magnetR := st.magnetRadius()
	pickup := radius + maze.CoinRadius
	i := 0
	for i < len(st.Coins) {
		c := &st.Coins[i]
		dist := core.Dist(st.Ball.Pos, c.Pos)
		if magnetR > 0 && dist > 0 && dist < magnetR && dist >= pickup {
			// Pull grows with field depth; a coin at the rim barely
			// moves, one next to the ball rushes in.
			dir := st.Ball.Pos.Sub(c.Pos).Normalize()
			c.Pos = c.Pos.Add(dir.Scale((magnetR - dist) * magnetPullFactor * sdt * 60))
			dist = core.Dist(st.Ball.Pos, c.Pos)
		}
		if dist < pickup {
			st.CoinsCollected++
			idx := c.Index
			st.Coins = append(st.Coins[:i], st.Coins[i+1:]...)
			events = append(events, CoinCollected{Index: idx, Total: st.CoinsCollected})
			continue
		}
		i++
	}
	return events
}

func (e *Engine) collectLives(st *LevelState, radius float64, events []Event) []Event {
	i := 0
	for i < len(st.Lives) {
		l := st.Lives[i]
		if core.Dist(st.Ball.Pos, l.Pos) < radius+maze.LifeRadius {
			st.Lives = append(st.Lives[:i], st.Lives[i+1:]...)
			events = append(events, LifeCollected{Index: l.Index})
			continue
		}
		i++
	}
	return events
}

func (e *Engine) collectPowerups(st *LevelState, radius float64, events []Event) []Event {
	now := st.ElapsedMs()
	for i := range st.Powerups {
		p := &st.Powerups[i]
		if p.Collected {
			continue
		}
		if core.Dist(st.Ball.Pos, p.Spawn.Pos) < radius+p.Spawn.Radius {
			p.Collected = true
			st.activateEffect(p.Spawn.Type, now+e.durations.For(p.Spawn.Type))
			events = append(events, PowerupCollected{Type: p.Spawn.Type})
		}
	}
	return events
}

// applyBouncePads launches the ball along a pad's direction whenever
// their boxes overlap. The launch replaces the velocity component on
// the pad's axis outright, so pads feel identical at any approach
// speed.
func (e *Engine) applyBouncePads(st *LevelState, radius float64, events []Event) []Event {
	box := core.NewRect(st.Ball.Pos.X-radius, st.Ball.Pos.Y-radius, radius*2, radius*2)
	for i, pad := range e.def.BouncePads {
		if !box.Intersects(pad.Rect) {
			continue
		}
		force := pad.Force * pad.Direction.Sign()
		if pad.Direction.Axis() == maze.AxisX {
			st.Ball.Vel.X = force
		} else {
			st.Ball.Vel.Y = force
		}
		events = append(events, BouncePadTriggered{Index: i})
	}
	return events
}
