package bot

import (
	"math/rand"
	"testing"

	"donkey/internal/domain"
)

func card(t *testing.T, code string) domain.Card {
	t.Helper()
	c, err := domain.CardFromCode(code)
	if err != nil {
		t.Fatalf("CardFromCode(%q): %v", code, err)
	}
	return c
}

func cards(t *testing.T, codes ...string) []domain.Card {
	t.Helper()
	out := make([]domain.Card, 0, len(codes))
	for _, code := range codes {
		out = append(out, card(t, code))
	}
	return out
}

func suit(s domain.Suit) *domain.Suit { return &s }

func TestEasyBrainPlaysLegal(t *testing.T) {
	b := NewBrain(LevelEasy, rand.New(rand.NewSource(1)))
	legal := cards(t, "4H", "9H", "KH")
	for i := 0; i < 20; i++ {
		got, err := b.ChooseCard(GameView{Hand: legal, Legal: legal, LeadSuit: suit(domain.Hearts)})
		if err != nil {
			t.Fatalf("ChooseCard: %v", err)
		}
		if !legalChoice(legal, got) {
			t.Fatalf("chose %v outside legal set", got)
		}
	}
}

func TestMediumBrainLeadsMidValue(t *testing.T) {
	b := NewBrain(LevelMedium, rand.New(rand.NewSource(1)))
	hand := cards(t, "2D", "8C", "10H", "AS")
	got, err := b.ChooseCard(GameView{Hand: hand, Legal: hand})
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "10H") {
		t.Fatalf("lead = %v, want 10H (highest in the 6..10 band)", got)
	}
}

func TestMediumBrainLeadsLowestWithoutMidBand(t *testing.T) {
	b := NewBrain(LevelMedium, rand.New(rand.NewSource(1)))
	hand := cards(t, "2D", "3C", "KH", "AS")
	got, err := b.ChooseCard(GameView{Hand: hand, Legal: hand})
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "2D") {
		t.Fatalf("lead = %v, want 2D", got)
	}
}

func TestMediumBrainFollowsWithCheapestWinner(t *testing.T) {
	b := NewBrain(LevelMedium, rand.New(rand.NewSource(1)))
	view := GameView{
		Hand:     cards(t, "4H", "9H", "KH"),
		Legal:    cards(t, "4H", "9H", "KH"),
		LeadSuit: suit(domain.Hearts),
		InPlay: []domain.Play{
			{PlayerID: "p1", Card: card(t, "7H"), Order: 1},
		},
	}
	got, err := b.ChooseCard(view)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "9H") {
		t.Fatalf("follow = %v, want 9H (cheapest winner over 7H)", got)
	}
}

func TestMediumBrainDumpsLowestWhenBeaten(t *testing.T) {
	b := NewBrain(LevelMedium, rand.New(rand.NewSource(1)))
	view := GameView{
		Hand:     cards(t, "4H", "9H"),
		Legal:    cards(t, "4H", "9H"),
		LeadSuit: suit(domain.Hearts),
		InPlay: []domain.Play{
			{PlayerID: "p1", Card: card(t, "AH"), Order: 1},
		},
	}
	got, err := b.ChooseCard(view)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "4H") {
		t.Fatalf("follow = %v, want 4H (trick already lost)", got)
	}
}

func TestMediumBrainCutDumpsHighWhenHandIsHigh(t *testing.T) {
	b := NewBrain(LevelMedium, rand.New(rand.NewSource(1)))
	// Void in hearts; 3 of 4 cards are honors, so shed the biggest.
	hand := cards(t, "5D", "QC", "KC", "AS")
	view := GameView{Hand: hand, Legal: hand, LeadSuit: suit(domain.Hearts)}
	got, err := b.ChooseCard(view)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "AS") {
		t.Fatalf("cut = %v, want AS", got)
	}
}

func TestHardBrainAvoidsKnownVoidSuit(t *testing.T) {
	b := NewBrain(LevelHard, rand.New(rand.NewSource(1)))
	lead := domain.Clubs
	history := []domain.Turn{{
		Number:   1,
		LeadSuit: &lead,
		Status:   domain.TurnCut,
		Plays: []domain.Play{
			{PlayerID: "me", Card: card(t, "5C"), Order: 1},
			{PlayerID: "opp", Card: card(t, "2H"), Order: 2}, // opp showed void in clubs
		},
		Routed: true,
	}}
	hand := cards(t, "9C", "8D")
	got, err := b.ChooseCard(GameView{
		SelfID:     "me",
		Hand:       hand,
		Legal:      hand,
		History:    history,
		HandCounts: map[string]int{"me": 2, "opp": 5},
	})
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(t, "8D") {
		t.Fatalf("lead = %v, want 8D (opp is void in clubs)", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"easy":    LevelEasy,
		"medium":  LevelMedium,
		"hard":    LevelHard,
		"":        LevelMedium,
		"extreme": LevelMedium,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
