package game

import (
	"errors"
	"fmt"

	"github.com/TheAppMakerPro/gyro-maze/internal/core"
	"github.com/TheAppMakerPro/gyro-maze/internal/maze"
)

// State identifies where a session is in its lifecycle.
type State string

const (
	StateLoaded   State = "loaded"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateWon      State = "won"
	StateLost     State = "lost"
	StateGameOver State = "gameover"
	StateAborted  State = "aborted"
)

// Terminal reports whether the state ends the attempt.
func (s State) Terminal() bool {
	switch s {
	case StateWon, StateLost, StateGameOver, StateAborted:
		return true
	}
	return false
}

var (
	ErrNotRunning = errors.New("game: session is not running")
	ErrNotPaused  = errors.New("game: session is not paused")
)

// Win reward tuning.
const (
	winBaseCoins  = 10
	winLevelCoins = 2 // per level number
	winStarCoins  = 5 // per star earned
	winBestCoins  = 15
)

// Session runs one level attempt: it owns the runtime state, drives the
// engine, maps raw gameplay events to outcomes and talks to the
// collaborators for lives, coins and bests. Single-threaded; callers
// tick it from their own loop.
type Session struct {
	def       *maze.Definition
	engine    *Engine
	collab    Collaborator
	cfg       PhysicsConfig
	durations EffectDurations
	state     State
	st        *LevelState
	pending   []Event
}

// Option adjusts session construction.
type Option func(*sessionOpts)

type sessionOpts struct {
	seed      int64
	seedSet   bool
	durations EffectDurations
}

// WithSeed fixes the bounce-perturbation seed. Without it the level
// number seeds the stream, so a level replays identically by default.
func WithSeed(seed int64) Option {
	return func(o *sessionOpts) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithEffectDurations overrides the stock effect timing table.
func WithEffectDurations(d EffectDurations) Option {
	return func(o *sessionOpts) { o.durations = d }
}

// NewSession validates the definition and prepares a Loaded session.
// A validation failure is a configuration error: the caller may retry
// with a freshly generated definition. A nil collaborator falls back to
// the in-memory stand-in.
func NewSession(def *maze.Definition, cfg PhysicsConfig, collab Collaborator, opts ...Option) (*Session, error) {
	o := sessionOpts{durations: DefaultEffectDurations()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seedSet {
		o.seed = int64(def.ID)
	}
	if collab == nil {
		collab = NewNopCollaborator()
	}
	engine, err := NewEngine(def, cfg, o.durations, o.seed)
	if err != nil {
		return nil, fmt.Errorf("game: cannot load level %d: %w", def.ID, err)
	}
	s := &Session{
		def:       def,
		engine:    engine,
		collab:    collab,
		cfg:       cfg,
		durations: o.durations,
		state:     StateLoaded,
	}
	s.reset()
	return s, nil
}

// reset rebuilds the runtime state from the immutable definition:
// pickups respawn, the ball returns to start, timers and effects clear.
func (s *Session) reset() {
	s.st = NewLevelState(s.def, s.cfg, s.collab.Effects())
	s.pending = nil
}

// Start moves a freshly loaded session into Running.
func (s *Session) Start() error {
	if s.state != StateLoaded {
		return fmt.Errorf("game: cannot start from %q", s.state)
	}
	s.state = StateRunning
	s.pending = append(s.pending, LevelStarted{Level: s.def.ID})
	return nil
}

// Pause freezes the session. Ticks become no-ops until Resume.
func (s *Session) Pause() error {
	if s.state != StateRunning {
		return ErrNotRunning
	}
	s.state = StatePaused
	return nil
}

// Resume continues a paused session. The caller resamples its frame
// clock, so the pause gap never reaches the simulation as a giant dt.
func (s *Session) Resume() error {
	if s.state != StatePaused {
		return ErrNotPaused
	}
	s.state = StateRunning
	return nil
}

// Restart re-enters Loaded with state rebuilt from the definition. The
// perturbation stream keeps its position, so a retry is not a replay.
func (s *Session) Restart() error {
	if s.state == StateAborted {
		return fmt.Errorf("game: session aborted")
	}
	s.reset()
	s.state = StateLoaded
	return nil
}

// Abort discards the session. Pending effects and events are cleared
// synchronously so nothing fires after the caller walks away.
func (s *Session) Abort() {
	s.state = StateAborted
	s.st.Effects = nil
	s.pending = nil
}

// Tick advances the session one frame. Outside Running it reports
// nothing and mutates nothing, which is the whole pause implementation.
// Engine events pass through, followed by the session outcomes they
// imply, with TimeUpdated closing every running tick.
func (s *Session) Tick(dt float64, tilt core.Tilt) []Event {
	if s.state != StateRunning {
		return nil
	}
	out := s.pending
	s.pending = nil
	for _, ev := range s.engine.Step(s.st, dt, tilt) {
		out = append(out, ev)
		switch ev := ev.(type) {
		case CoinCollected:
			value := 1
			if s.st.effectActive(maze.PowerupDoubleCoins) {
				value = 2
			}
			out = append(out, CoinsChanged{Total: s.collab.AddCoins(value)})
		case LifeCollected:
			out = append(out, LifeGained{Total: s.collab.AddLife()})
		case ShieldBurst:
			if ev.FromUpgrade {
				s.collab.ConsumeShield()
			}
		case FellInHole:
			out = s.loseAttempt(out)
		case ReachedGoal:
			out = s.winAttempt(out)
		}
	}
	if s.state == StateRunning {
		out = append(out, TimeUpdated{ElapsedMs: s.st.ElapsedMs()})
	}
	return out
}

// ActivateTimeWarp engages the purchased slow-time burst: three seconds
// at 0.4x, at most once per attempt, only while running and only when
// the progression collaborator grants the item.
func (s *Session) ActivateTimeWarp() bool {
	if s.state != StateRunning || s.st.warpUsed || !s.collab.TimeWarpOwned() {
		return false
	}
	s.collab.ConsumeTimeWarp()
	s.st.warpUsed = true
	s.st.warpUntil = s.st.ElapsedMs() + timeWarpDurationMs
	s.pending = append(s.pending, TimeWarpActivated{})
	return true
}

// winAttempt scores the finished run and credits the wallet. The best
// check happens before recording so a tie never counts as a new best.
func (s *Session) winAttempt(out []Event) []Event {
	s.state = StateWon
	elapsed := s.st.ElapsedMs()
	stars := s.def.StarsFor(elapsed)
	best, ok := s.collab.Best(s.def.ID)
	isNewBest := !ok || elapsed < best.TimeMs
	reward := winBaseCoins + s.def.ID*winLevelCoins + stars*winStarCoins
	if isNewBest {
		reward += winBestCoins
	}
	total := s.collab.AddCoins(reward)
	s.collab.Record(s.def.ID, elapsed, stars)
	out = append(out, Won{
		TimeMs:    elapsed,
		Stars:     stars,
		Coins:     s.st.CoinsCollected,
		IsNewBest: isNewBest,
		Reward:    reward,
	})
	return append(out, CoinsChanged{Total: total})
}

// loseAttempt burns a life and decides between a retryable loss and
// running out entirely.
func (s *Session) loseAttempt(out []Event) []Event {
	remaining := s.collab.SpendLife()
	out = append(out, LifeLost{Remaining: remaining})
	if remaining > 0 {
		s.state = StateLost
		return append(out, Lost{Remaining: remaining})
	}
	s.state = StateGameOver
	return append(out, GameOver{})
}

func (s *Session) State() State { return s.state }

// Level is the level number this session plays.
func (s *Session) Level() int { return s.def.ID }

// Definition returns the immutable level geometry.
func (s *Session) Definition() *maze.Definition { return s.def }

// LevelState exposes the live runtime state for rendering. Callers must
// treat it as read-only.
func (s *Session) LevelState() *LevelState { return s.st }

// ElapsedMs is the real time the current attempt has run.
func (s *Session) ElapsedMs() int64 { return s.st.ElapsedMs() }

// CoinsCollected counts pickups in the current attempt.
func (s *Session) CoinsCollected() int { return s.st.CoinsCollected }

// Lives delegates to the wallet.
func (s *Session) Lives() int { return s.collab.Lives() }

// WalletCoins delegates to the wallet.
func (s *Session) WalletCoins() int { return s.collab.Coins() }

// TimeWarpAvailable reports whether ActivateTimeWarp would succeed
// right now, for HUD button state.
func (s *Session) TimeWarpAvailable() bool {
	return s.state == StateRunning && !s.st.warpUsed && s.collab.TimeWarpOwned()
}

// Snapshot flattens the current runtime state for determinism checks.
func (s *Session) Snapshot() Snapshot {
	return s.engine.Snapshot(s.st)
}
