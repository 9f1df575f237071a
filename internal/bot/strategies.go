package bot

import (
	"math/rand"

	"donkey/internal/domain"
)

// easyBrain plays an arbitrary legal card.
type easyBrain struct {
	rng *rand.Rand
}

func (b *easyBrain) Level() Level { return LevelEasy }

func (b *easyBrain) ChooseCard(view GameView) (domain.Card, error) {
	if len(view.Legal) == 0 {
		return domain.Card{}, ErrNoChoice
	}
	return view.Legal[b.rng.Intn(len(view.Legal))], nil
}
