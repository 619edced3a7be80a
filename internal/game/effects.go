package game

import "github.com/TheAppMakerPro/gyro-maze/internal/maze"

// Effect strength tuning. Durations are configurable per session; the
// multipliers are part of the game's identity and stay fixed.
const (
	pickupMagnetRadius = 80.0
	slowMotionScale    = 0.6
	upgradeSlowScale   = 0.8
	timeWarpScale      = 0.4
	shrinkScale        = 0.65
	timeWarpDurationMs = 3000
)

// EffectDurations sets how long each pickup lasts, in milliseconds of
// real session time. The table is passed to the engine at construction
// and never mutated afterwards.
type EffectDurations struct {
	Shield      int64
	Magnet      int64
	SlowMotion  int64
	Shrink      int64
	Ghost       int64
	DoubleCoins int64
}

// DefaultEffectDurations returns the stock tuning.
func DefaultEffectDurations() EffectDurations {
	return EffectDurations{
		Shield:      8000,
		Magnet:      6000,
		SlowMotion:  5000,
		Shrink:      7000,
		Ghost:       4000,
		DoubleCoins: 10000,
	}
}

// For returns the duration for one pickup type.
func (d EffectDurations) For(t maze.PowerupType) int64 {
	switch t {
	case maze.PowerupShield:
		return d.Shield
	case maze.PowerupMagnet:
		return d.Magnet
	case maze.PowerupSlowMotion:
		return d.SlowMotion
	case maze.PowerupShrink:
		return d.Shrink
	case maze.PowerupGhost:
		return d.Ghost
	case maze.PowerupDoubleCoins:
		return d.DoubleCoins
	default:
		return 0
	}
}

// ActiveEffect is one running timed effect. Expiry is a plain timestamp
// comparison against the session clock once per tick; there are no
// out-of-band timers to leak across a restart.
type ActiveEffect struct {
	Type   maze.PowerupType
	EndsMs int64 // session elapsed-ms at which the effect stops
}

// activateEffect starts an effect or extends a running one. Picking up
// a duplicate never shortens the remaining window.
func (s *LevelState) activateEffect(t maze.PowerupType, until int64) {
	for i := range s.Effects {
		if s.Effects[i].Type == t {
			if until > s.Effects[i].EndsMs {
				s.Effects[i].EndsMs = until
			}
			return
		}
	}
	s.Effects = append(s.Effects, ActiveEffect{Type: t, EndsMs: until})
}

// expireEffects drops every effect whose window has passed and reports
// the expired types in activation order.
func (s *LevelState) expireEffects(now int64) []maze.PowerupType {
	var expired []maze.PowerupType
	kept := s.Effects[:0]
	for _, e := range s.Effects {
		if now >= e.EndsMs {
			expired = append(expired, e.Type)
			continue
		}
		kept = append(kept, e)
	}
	s.Effects = kept
	return expired
}

func (s *LevelState) effectActive(t maze.PowerupType) bool {
	for _, e := range s.Effects {
		if e.Type == t {
			return true
		}
	}
	return false
}

// removeEffect cancels an effect before its window ends. Used when a
// shield pickup is spent on a hole save.
func (s *LevelState) removeEffect(t maze.PowerupType) {
	kept := s.Effects[:0]
	for _, e := range s.Effects {
		if e.Type != t {
			kept = append(kept, e)
		}
	}
	s.Effects = kept
}
