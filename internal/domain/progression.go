package domain

import "errors"

// ProgressionWord is the fixed penalty word. A player earns one letter
// per round lost and is eliminated on spelling it in full.
const ProgressionWord = "DONKEY"

// Progression is a player's accumulated penalty letters, always a
// prefix of ProgressionWord.
type Progression string

// ErrProgressionComplete reports an advance past the full word.
var ErrProgressionComplete = errors.New("progression already complete")

// Advance returns the progression grown by exactly the next letter.
func (p Progression) Advance() (Progression, error) {
	if p.Complete() {
		return p, ErrProgressionComplete
	}
	return Progression(ProgressionWord[:len(p)+1]), nil
}

// Complete reports whether the player has spelled the full word.
func (p Progression) Complete() bool { return string(p) == ProgressionWord }

// Valid reports whether p is a prefix of the penalty word.
func (p Progression) Valid() bool {
	return len(p) <= len(ProgressionWord) && string(p) == ProgressionWord[:len(p)]
}

// LastLetter returns the most recently earned letter, or "".
func (p Progression) LastLetter() string {
	if len(p) == 0 {
		return ""
	}
	return string(p[len(p)-1])
}
