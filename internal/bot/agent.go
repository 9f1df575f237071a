package bot

import (
	"context"
	"time"

	"donkey/internal/domain"
)

// Agent wraps a brain with the decision bound the orchestrator
// enforces: a brain that errors or overruns its budget is overridden
// by the deterministic fallback, the first card of the sorted legal
// set. A stuck bot can therefore never stall a game.
type Agent struct {
	brain   Brain
	timeout time.Duration
}

// NewAgent builds an agent with the given decision budget. A
// non-positive timeout means the brain runs unbounded.
func NewAgent(brain Brain, timeout time.Duration) *Agent {
	return &Agent{brain: brain, timeout: timeout}
}

// Level returns the wrapped brain's difficulty.
func (a *Agent) Level() Level { return a.brain.Level() }

// Decide returns the card to play for view. The returned card is
// always a member of view.Legal.
func (a *Agent) Decide(ctx context.Context, view GameView) domain.Card {
	fallback := view.Legal[0]

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	type pick struct {
		card domain.Card
		err  error
	}
	ch := make(chan pick, 1)
	go func() {
		c, err := a.brain.ChooseCard(view)
		ch <- pick{c, err}
	}()

	select {
	case p := <-ch:
		if p.err != nil || !legalChoice(view.Legal, p.card) {
			return fallback
		}
		return p.card
	case <-ctx.Done():
		return fallback
	}
}

func legalChoice(legal []domain.Card, card domain.Card) bool {
	for _, c := range legal {
		if c == card {
			return true
		}
	}
	return false
}
