package bot

import (
	"math/rand"

	"donkey/internal/domain"
)

// mediumBrain plays positionally: mid-value leads, cheapest winning
// follows, and careful dumps when cutting.
type mediumBrain struct {
	rng *rand.Rand
}

func (b *mediumBrain) Level() Level { return LevelMedium }

func (b *mediumBrain) ChooseCard(view GameView) (domain.Card, error) {
	if len(view.Legal) == 0 {
		return domain.Card{}, ErrNoChoice
	}
	if view.LeadSuit == nil {
		return b.chooseLead(view.Legal), nil
	}
	if view.Legal[0].Suit == *view.LeadSuit {
		return b.chooseFollow(view), nil
	}
	return b.chooseCut(view.Hand, view.Legal), nil
}

// chooseLead prefers the highest card in the 6..10 band: strong enough
// to contest the trick, cheap enough to lose.
func (b *mediumBrain) chooseLead(legal []domain.Card) domain.Card {
	best := domain.Card{}
	found := false
	for _, c := range legal {
		v := c.Value()
		if v >= 6 && v <= 10 && (!found || v > best.Value()) {
			best = c
			found = true
		}
	}
	if found {
		return best
	}
	return lowestOf(legal)
}

// chooseFollow plays the cheapest card that still beats the table, or
// the overall cheapest when the trick is already lost.
func (b *mediumBrain) chooseFollow(view GameView) domain.Card {
	top, contested := highestInPlay(view)
	if contested {
		var winner domain.Card
		found := false
		for _, c := range view.Legal {
			if c.Value() > top.Value() && (!found || c.Value() < winner.Value()) {
				winner = c
				found = true
			}
		}
		if found {
			return winner
		}
	}
	return lowestOf(view.Legal)
}

// chooseCut dumps a mid-value card, except when the hand is mostly
// high cards (over 70%), where shedding the highest is better.
func (b *mediumBrain) chooseCut(hand, legal []domain.Card) domain.Card {
	high := 0
	for _, c := range hand {
		if c.Value() >= 11 {
			high++
		}
	}
	if len(hand) > 0 && float64(high)/float64(len(hand)) > 0.7 {
		return highestOf(legal)
	}
	return middleOf(legal)
}

func lowestOf(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value() < best.Value() {
			best = c
		}
	}
	return best
}

func highestOf(cards []domain.Card) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return best
}

func middleOf(cards []domain.Card) domain.Card {
	sorted := append([]domain.Card(nil), cards...)
	domain.SortHand(sorted)
	return sorted[len(sorted)/2]
}
