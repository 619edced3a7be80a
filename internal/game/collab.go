package game

// EffectSnapshot captures the persistent upgrade grants a session
// starts with, read once from the progression collaborator at load.
// Zero value means no grants.
type EffectSnapshot struct {
	Shield               bool
	SlowMotion           bool
	MagnetRadius         float64
	Ghost                bool
	ShrinkBallMultiplier float64
}

// Wallet manages the player's lives and coin balance. Methods return
// the post-operation totals. Implementations backed by storage absorb
// and log their own errors so the simulation never stalls on IO.
type Wallet interface {
	Lives() int
	SpendLife() (remaining int)
	AddLife() (total int)
	Coins() int
	AddCoins(n int) (total int)
}

// BestEntry is a recorded level completion.
type BestEntry struct {
	TimeMs int64
	Stars  int
}

// Progress records per-level completions. Record may be called with a
// worse result than the stored one; keeping the best is the store's
// concern.
type Progress interface {
	Best(level int) (BestEntry, bool)
	Record(level int, elapsedMs int64, stars int)
}

// Upgrades exposes the progression system's persistent effect grants
// and consumable items.
type Upgrades interface {
	Effects() EffectSnapshot
	TimeWarpOwned() bool
	ConsumeTimeWarp()
	ConsumeShield()
}

// Collaborator bundles the three external dependencies of a session.
type Collaborator interface {
	Wallet
	Progress
	Upgrades
}

// NopCollaborator is an in-memory stand-in: three lives, an empty
// wallet, no upgrades, bests kept only for the process lifetime.
// Headless runs and tests use it.
type NopCollaborator struct {
	lives int
	coins int
	bests map[int]BestEntry
}

// NewNopCollaborator returns a collaborator with the stock three lives.
func NewNopCollaborator() *NopCollaborator {
	return &NopCollaborator{lives: 3, bests: make(map[int]BestEntry)}
}

func (n *NopCollaborator) Lives() int { return n.lives }

func (n *NopCollaborator) SpendLife() int {
	if n.lives > 0 {
		n.lives--
	}
	return n.lives
}

func (n *NopCollaborator) AddLife() int {
	n.lives++
	return n.lives
}

func (n *NopCollaborator) Coins() int { return n.coins }

func (n *NopCollaborator) AddCoins(c int) int {
	n.coins += c
	return n.coins
}

func (n *NopCollaborator) Best(level int) (BestEntry, bool) {
	b, ok := n.bests[level]
	return b, ok
}

func (n *NopCollaborator) Record(level int, elapsedMs int64, stars int) {
	b, ok := n.bests[level]
	if !ok {
		n.bests[level] = BestEntry{TimeMs: elapsedMs, Stars: stars}
		return
	}
	if elapsedMs < b.TimeMs {
		b.TimeMs = elapsedMs
	}
	if stars > b.Stars {
		b.Stars = stars
	}
	n.bests[level] = b
}

func (n *NopCollaborator) Effects() EffectSnapshot { return EffectSnapshot{} }
func (n *NopCollaborator) TimeWarpOwned() bool     { return false }
func (n *NopCollaborator) ConsumeTimeWarp()        {}
func (n *NopCollaborator) ConsumeShield()          {}
