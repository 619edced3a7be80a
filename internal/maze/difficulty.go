package maze

// Tier is one row of the difficulty step function mapping a level range
// to generation parameters. Canvas growth, cell shrink, hole count and
// complexity all step at fixed level breakpoints rather than scaling
// continuously.
type Tier struct {
	MaxLevel   int    // Highest level this row applies to
	Name       string // Display name of the tier
	Complexity int    // 1..10, drives cell size, goal radius and star times
	HoleCount  int    // Holes the generator aims to place
	SizeBonus  int    // Pixels added to the base canvas on both axes
}

// tiers is the fixed difficulty table. Breakpoints and tuples are part
// of the generation contract: changing a row changes every layout in
// that range.
var tiers = [...]Tier{
	{MaxLevel: 5, Name: "Easy", Complexity: 1, HoleCount: 1, SizeBonus: 0},
	{MaxLevel: 10, Name: "Novice", Complexity: 2, HoleCount: 2, SizeBonus: 20},
	{MaxLevel: 20, Name: "Casual", Complexity: 3, HoleCount: 3, SizeBonus: 40},
	{MaxLevel: 30, Name: "Medium", Complexity: 4, HoleCount: 4, SizeBonus: 60},
	{MaxLevel: 40, Name: "Tricky", Complexity: 5, HoleCount: 5, SizeBonus: 80},
	{MaxLevel: 50, Name: "Hard", Complexity: 6, HoleCount: 6, SizeBonus: 100},
	{MaxLevel: 60, Name: "Very Hard", Complexity: 7, HoleCount: 8, SizeBonus: 120},
	{MaxLevel: 70, Name: "Expert", Complexity: 8, HoleCount: 9, SizeBonus: 135},
	{MaxLevel: 90, Name: "Insane", Complexity: 9, HoleCount: 10, SizeBonus: 150},
	{MaxLevel: 100, Name: "Master", Complexity: 10, HoleCount: 12, SizeBonus: 170},
}

// TierFor returns the difficulty row governing a level number. Levels
// beyond the last breakpoint reuse the final row.
func TierFor(level int) Tier {
	for _, t := range tiers {
		if level <= t.MaxLevel {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Tiers returns a copy of the difficulty table for listings.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

// Targets summarizes how many entities of each category the generator
// aims for at a level. Rejection sampling may place fewer; comparing a
// generated Definition against its targets reveals the shortfall.
type Targets struct {
	Holes       int
	Coins       int
	Powerups    int
	BouncePads  int
	SpeedZones  int
	MovingWalls int
}

// TargetsFor computes the per-category placement targets for a level.
func TargetsFor(level int) Targets {
	t := Targets{
		Holes: TierFor(level).HoleCount,
		Coins: min(3+level/12, 10),
	}
	if level >= powerupMinLevel {
		t.Powerups = min(1+(level-powerupMinLevel)/15, 3)
	}
	if level >= padMinLevel {
		t.BouncePads = min(1+(level-padMinLevel)/15, 3)
	}
	if level >= zoneMinLevel {
		t.SpeedZones = min(1+(level-zoneMinLevel)/15, 3)
	}
	if level >= moverMinLevel {
		t.MovingWalls = min(1+(level-moverMinLevel)/12, 4)
	}
	return t
}

// Category unlock levels. Below the threshold a category is absent.
const (
	powerupMinLevel = 6
	padMinLevel     = 11
	zoneMinLevel    = 16
	moverMinLevel   = 21
)
