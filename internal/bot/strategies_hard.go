package bot

import (
	"math/rand"

	"donkey/internal/domain"
)

// hardBrain extends the medium play with memory of which suits each
// opponent has shown void in, and avoids leading into known cuts.
type hardBrain struct {
	mediumBrain
}

func newHardBrain(rng *rand.Rand) *hardBrain {
	return &hardBrain{mediumBrain{rng: rng}}
}

func (b *hardBrain) Level() Level { return LevelHard }

func (b *hardBrain) ChooseCard(view GameView) (domain.Card, error) {
	if len(view.Legal) == 0 {
		return domain.Card{}, ErrNoChoice
	}
	if view.LeadSuit == nil {
		return b.chooseLeadWithMemory(view), nil
	}
	return b.mediumBrain.ChooseCard(view)
}

// chooseLeadWithMemory leads a suit no opponent is known void in. When
// every suit in hand is compromised, it dumps the highest card of the
// most compromised suit instead, since the trick is coming back anyway.
func (b *hardBrain) chooseLeadWithMemory(view GameView) domain.Card {
	voids := voidSuits(view)
	var safe []domain.Card
	for _, c := range view.Legal {
		if voids[c.Suit] == 0 {
			safe = append(safe, c)
		}
	}
	if len(safe) > 0 {
		return b.chooseLead(safe)
	}
	worst := view.Legal[0]
	for _, c := range view.Legal[1:] {
		if voids[c.Suit] > voids[worst.Suit] ||
			(voids[c.Suit] == voids[worst.Suit] && c.Value() > worst.Value()) {
			worst = c
		}
	}
	return worst
}

// voidSuits counts, per suit, how many still-active opponents have
// shown void in it by cutting a trick led in that suit.
func voidSuits(view GameView) map[domain.Suit]int {
	void := map[string]map[domain.Suit]bool{}
	for _, turn := range view.History {
		if turn.LeadSuit == nil {
			continue
		}
		for _, p := range turn.Plays {
			if p.PlayerID == view.SelfID || p.Card.Suit == *turn.LeadSuit {
				continue
			}
			if void[p.PlayerID] == nil {
				void[p.PlayerID] = map[domain.Suit]bool{}
			}
			void[p.PlayerID][*turn.LeadSuit] = true
		}
	}
	counts := map[domain.Suit]int{}
	for id, suits := range void {
		if view.HandCounts[id] == 0 {
			continue
		}
		for s := range suits {
			counts[s]++
		}
	}
	return counts
}
