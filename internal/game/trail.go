package game

import "github.com/TheAppMakerPro/gyro-maze/internal/core"

// TrailSample is one cosmetic afterimage of the ball. Renderers draw
// samples at their alpha; the simulation itself never reads them back.
type TrailSample struct {
	Pos   core.Vec
	Alpha float64
}

const (
	trailMinSpeed = 2.0
	trailFadeRate = 3.0 // alpha per real second
	trailMaxLen   = 24
)

// appendTrailSample records the ball position when it moves fast enough
// to leave a visible streak.
func (s *LevelState) appendTrailSample() {
	if s.Ball.Vel.Len() < trailMinSpeed {
		return
	}
	s.Trail = append(s.Trail, TrailSample{Pos: s.Ball.Pos, Alpha: 1})
	if len(s.Trail) > trailMaxLen {
		s.Trail = s.Trail[len(s.Trail)-trailMaxLen:]
	}
}

// fadeTrail decays all samples and prunes the spent ones.
func (s *LevelState) fadeTrail(dt float64) {
	kept := s.Trail[:0]
	for _, t := range s.Trail {
		t.Alpha -= trailFadeRate * dt
		if t.Alpha > 0 {
			kept = append(kept, t)
		}
	}
	s.Trail = kept
}
