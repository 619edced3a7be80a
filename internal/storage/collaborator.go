package storage

import (
	"github.com/charmbracelet/log"

	"github.com/TheAppMakerPro/gyro-maze/internal/game"
)

// Effect strengths granted by permanent upgrades. Pickups found inside
// a level are stronger; the upgrade versions last the whole run.
const (
	upgradeMagnetRadius = 90.0
	upgradeShrinkScale  = 0.75
)

// Collaborator adapts a Store to the session's wallet, progress and
// upgrade interfaces. Reads are served from memory; writes go through
// to the store best-effort, so a broken disk degrades to an in-memory
// run instead of stalling a level mid-frame.
type Collaborator struct {
	store  *Store
	logger *log.Logger

	coins    int
	lives    int
	bests    map[int]game.BestEntry
	upgrades map[string]int
	highest  int
}

var _ game.Collaborator = (*Collaborator)(nil)

// NewCollaborator loads the wallet, progress and upgrades into memory.
// A stored life count of zero is topped back up to startingLives so a
// previous game over does not lock the player out.
func NewCollaborator(store *Store, startingLives int, logger *log.Logger) (*Collaborator, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Collaborator{
		store:    store,
		logger:   logger,
		bests:    make(map[int]game.BestEntry),
		upgrades: make(map[string]int),
	}

	coins, lives, err := store.Wallet()
	if err != nil {
		return nil, err
	}
	if lives <= 0 {
		lives = startingLives
		if err := store.SetWallet(coins, lives); err != nil {
			return nil, err
		}
	}
	c.coins, c.lives = coins, lives

	progress, err := store.AllProgress()
	if err != nil {
		return nil, err
	}
	for _, p := range progress {
		if !p.Completed {
			continue
		}
		c.bests[p.Level] = game.BestEntry{TimeMs: p.BestTimeMs, Stars: p.Stars}
		if p.Level > c.highest {
			c.highest = p.Level
		}
	}

	ups, err := store.Upgrades()
	if err != nil {
		return nil, err
	}
	c.upgrades = ups

	return c, nil
}

func (c *Collaborator) Lives() int { return c.lives }

func (c *Collaborator) SpendLife() int {
	if c.lives > 0 {
		c.lives--
		if _, err := c.store.AdjustLives(-1); err != nil {
			c.logger.Warn("cannot persist life loss", "error", err)
		}
	}
	return c.lives
}

func (c *Collaborator) AddLife() int {
	c.lives++
	if _, err := c.store.AdjustLives(1); err != nil {
		c.logger.Warn("cannot persist extra life", "error", err)
	}
	return c.lives
}

func (c *Collaborator) Coins() int { return c.coins }

func (c *Collaborator) AddCoins(n int) int {
	c.coins += n
	if c.coins < 0 {
		c.coins = 0
	}
	if _, err := c.store.AddCoins(n); err != nil {
		c.logger.Warn("cannot persist coins", "error", err)
	}
	return c.coins
}

func (c *Collaborator) Best(level int) (game.BestEntry, bool) {
	b, ok := c.bests[level]
	return b, ok
}

func (c *Collaborator) Record(level int, elapsedMs int64, stars int) {
	b, ok := c.bests[level]
	if !ok || elapsedMs < b.TimeMs {
		b.TimeMs = elapsedMs
	}
	if stars > b.Stars {
		b.Stars = stars
	}
	c.bests[level] = b
	if level > c.highest {
		c.highest = level
	}
	if err := c.store.RecordCompletion(level, elapsedMs, stars); err != nil {
		c.logger.Warn("cannot persist completion", "level", level, "error", err)
	}
}

// Effects maps owned upgrades onto the starting effect grants of a
// session.
func (c *Collaborator) Effects() game.EffectSnapshot {
	var snap game.EffectSnapshot
	if c.upgrades[UpgradeShield] > 0 {
		snap.Shield = true
	}
	if c.upgrades[UpgradeSlowMo] > 0 {
		snap.SlowMotion = true
	}
	if c.upgrades[UpgradeMagnet] > 0 {
		snap.MagnetRadius = upgradeMagnetRadius
	}
	if c.upgrades[UpgradeGhost] > 0 {
		snap.Ghost = true
	}
	if c.upgrades[UpgradeShrink] > 0 {
		snap.ShrinkBallMultiplier = upgradeShrinkScale
	}
	return snap
}

func (c *Collaborator) TimeWarpOwned() bool { return c.upgrades[UpgradeTimeWarp] > 0 }

func (c *Collaborator) ConsumeTimeWarp() {
	c.consume(UpgradeTimeWarp)
}

func (c *Collaborator) ConsumeShield() {
	c.consume(UpgradeShield)
}

func (c *Collaborator) consume(name string) {
	if c.upgrades[name] <= 0 {
		return
	}
	c.upgrades[name]--
	if err := c.store.ConsumeUpgrade(name); err != nil {
		c.logger.Warn("cannot persist upgrade use", "upgrade", name, "error", err)
	}
}

// AttemptStarted bumps the attempt counter for a level.
func (c *Collaborator) AttemptStarted(level int) {
	if err := c.store.RecordAttempt(level); err != nil {
		c.logger.Warn("cannot persist attempt", "level", level, "error", err)
	}
}

// MaxUnlocked returns the highest level the player may enter: one past
// the highest completed level.
func (c *Collaborator) MaxUnlocked() int { return c.highest + 1 }

// Unlocked reports whether a level is open for play.
func (c *Collaborator) Unlocked(level int) bool { return level <= c.highest+1 }
