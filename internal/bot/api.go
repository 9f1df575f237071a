// Package bot contains the card-choosing brains that stand in for
// human players, plus the agent that drives them on the game's behalf.
package bot

import (
	"errors"

	"donkey/internal/domain"
)

// Level names a brain difficulty.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// GameView is the information a brain is allowed to see when choosing
// a card: its own hand, the public table state, and public history.
// Opponents' hands are present only as counts.
type GameView struct {
	SelfID      string
	RoundNumber int
	TurnNumber  int

	// Hand is the brain's own sorted hand; Legal is the subset it may
	// play right now, also sorted. Legal is never empty.
	Hand  []domain.Card
	Legal []domain.Card

	LeadSuit   *domain.Suit
	InPlay     []domain.Play
	HandCounts map[string]int
	Letters    map[string]string

	// History holds the resolved turns of the current round, oldest
	// first, for brains that track who showed void in what.
	History []domain.Turn
}

// Brain picks one card from the legal set. Implementations must be
// deterministic given the same view and rng seed, and must not block.
type Brain interface {
	Level() Level
	ChooseCard(view GameView) (domain.Card, error)
}

// ErrNoChoice reports a view with no legal card, which the
// orchestrator never produces.
var ErrNoChoice = errors.New("no legal card to choose from")

// highestInPlay returns the strongest lead-suit card on the table.
// ok is false when nothing has been led yet.
func highestInPlay(view GameView) (domain.Card, bool) {
	if view.LeadSuit == nil {
		return domain.Card{}, false
	}
	best := domain.Card{}
	found := false
	for _, p := range view.InPlay {
		if p.Card.Suit != *view.LeadSuit {
			continue
		}
		if !found || p.Card.Value() > best.Value() {
			best = p.Card
			found = true
		}
	}
	return best, found
}
