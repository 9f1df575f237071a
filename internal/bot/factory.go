package bot

import "math/rand"

// NewBrain builds a brain for the given level. Unknown levels fall
// back to medium, which is also the configured default.
func NewBrain(level Level, rng *rand.Rand) Brain {
	switch level {
	case LevelEasy:
		return &easyBrain{rng: rng}
	case LevelHard:
		return newHardBrain(rng)
	default:
		return &mediumBrain{rng: rng}
	}
}

// ParseLevel normalizes a level string, defaulting unknown input.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelEasy, LevelMedium, LevelHard:
		return Level(s)
	default:
		return LevelMedium
	}
}
