package domain

import "math/rand"

// DeckSize is the number of cards in play at all times during a round.
const DeckSize = 52

// NewDeck returns the full 52-card deck in rank-major order, unshuffled.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, r := range Ranks {
		for _, s := range Suits {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle returns a uniformly random permutation of deck using rng.
// The input is left untouched.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
