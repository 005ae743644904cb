package game

// MaxPlayerLevel is the highest level the XP table reaches. Loot exposure
// (and nothing else in the engine) keys off levels beyond 15.
const MaxPlayerLevel = 30

// xpThresholds[n] is the total experience required to reach level n+1.
// The table is monotonic; LevelForXP depends on that.
var xpThresholds = buildXPThresholds()

func buildXPThresholds() []int64 {
	out := make([]int64, MaxPlayerLevel)
	out[0] = 0
	step := int64(1500)
	for i := 1; i < MaxPlayerLevel; i++ {
		out[i] = out[i-1] + step
		// Each level costs 20% more than the previous one.
		step = step * 6 / 5
	}
	return out
}

// LevelForXP maps accumulated experience to a player level (1-based).
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for i := 1; i < len(xpThresholds); i++ {
		if xp < xpThresholds[i] {
			break
		}
		level = i + 1
	}
	return level
}

// XPForLevel returns the total experience required to reach the given level.
// Levels past the table clamp to the final threshold.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxPlayerLevel {
		level = MaxPlayerLevel
	}
	return xpThresholds[level-1]
}
