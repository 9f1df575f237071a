package domain

import (
	"errors"
	"sort"
)

// SortHand orders cards in place by suit (diamonds < clubs < hearts <
// spades) then ascending rank value. Stable and idempotent.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if suitOrder[cards[i].Suit] != suitOrder[cards[j].Suit] {
			return suitOrder[cards[i].Suit] < suitOrder[cards[j].Suit]
		}
		return cards[i].Value() < cards[j].Value()
	})
}

// ErrEmptyHand reports a legality query against a hand with no cards.
var ErrEmptyHand = errors.New("hand is empty")

// LegalPlays returns the cards in hand that may legally be played
// against leadSuit. A nil leadSuit (first play of a turn) allows the
// whole hand. Holding any lead-suit card restricts the play to those;
// holding none frees the whole hand, which is what enables a CUT.
// Never empty for a non-empty hand.
func LegalPlays(hand []Card, leadSuit *Suit) ([]Card, error) {
	if len(hand) == 0 {
		return nil, ErrEmptyHand
	}
	if leadSuit == nil {
		return append([]Card(nil), hand...), nil
	}
	var suited []Card
	for _, c := range hand {
		if c.Suit == *leadSuit {
			suited = append(suited, c)
		}
	}
	if len(suited) > 0 {
		return suited, nil
	}
	return append([]Card(nil), hand...), nil
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

func removeCard(cards []Card, card Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c == card {
			continue
		}
		out = append(out, c)
	}
	return out
}
