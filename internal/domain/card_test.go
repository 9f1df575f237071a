package domain

import (
	"math/rand"
	"testing"
)

func TestRankValue(t *testing.T) {
	cases := []struct {
		rank Rank
		want int
	}{
		{"2", 2}, {"9", 9}, {"10", 10}, {"J", 11}, {"Q", 12}, {"K", 13}, {"A", 14},
	}
	for _, c := range cases {
		got, err := RankValue(c.rank)
		if err != nil {
			t.Fatalf("RankValue(%q): %v", c.rank, err)
		}
		if got != c.want {
			t.Errorf("RankValue(%q) = %d, want %d", c.rank, got, c.want)
		}
	}
}

func TestRankValueInvalid(t *testing.T) {
	for _, r := range []Rank{"", "1", "11", "B", "joker"} {
		if _, err := RankValue(r); err != ErrInvalidRank {
			t.Errorf("RankValue(%q) err = %v, want ErrInvalidRank", r, err)
		}
	}
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, c := range NewDeck() {
		parsed, err := CardFromCode(c.Code())
		if err != nil {
			t.Fatalf("CardFromCode(%q): %v", c.Code(), err)
		}
		if parsed != c {
			t.Errorf("CardFromCode(%q) = %+v, want %+v", c.Code(), parsed, c)
		}
	}
}

func TestCardFromCodeInvalid(t *testing.T) {
	for _, code := range []string{"", "A", "AX", "1S", "11H", "ZD"} {
		if _, err := CardFromCode(code); err == nil {
			t.Errorf("CardFromCode(%q): expected error", code)
		}
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	deck := NewDeck()
	shuffled := Shuffle(rand.New(rand.NewSource(42)), deck)
	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled size = %d, want %d", len(shuffled), len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range shuffled {
		seen[c] = true
	}
	for _, c := range deck {
		if !seen[c] {
			t.Fatalf("card %v lost in shuffle", c)
		}
	}
	// Input must stay untouched.
	if deck[0] != NewDeck()[0] {
		t.Error("Shuffle mutated its input")
	}
}
