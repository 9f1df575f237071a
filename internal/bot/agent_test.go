package bot

import (
	"context"
	"testing"
	"time"

	"donkey/internal/domain"
)

type stuckBrain struct{}

func (stuckBrain) Level() Level { return LevelEasy }
func (stuckBrain) ChooseCard(GameView) (domain.Card, error) {
	time.Sleep(time.Minute)
	return domain.Card{}, nil
}

type rogueBrain struct{}

func (rogueBrain) Level() Level { return LevelEasy }
func (rogueBrain) ChooseCard(GameView) (domain.Card, error) {
	// A card that is not in the legal set.
	return domain.Card{Rank: "A", Suit: domain.Spades}, nil
}

func TestAgentFallsBackOnTimeout(t *testing.T) {
	a := NewAgent(stuckBrain{}, 10*time.Millisecond)
	legal := cards(t, "2D", "KH")
	got := a.Decide(context.Background(), GameView{Hand: legal, Legal: legal})
	if got != legal[0] {
		t.Fatalf("Decide = %v, want fallback %v", got, legal[0])
	}
}

func TestAgentRejectsIllegalChoice(t *testing.T) {
	a := NewAgent(rogueBrain{}, time.Second)
	legal := cards(t, "2D", "KH")
	got := a.Decide(context.Background(), GameView{Hand: legal, Legal: legal})
	if got != legal[0] {
		t.Fatalf("Decide = %v, want fallback %v", got, legal[0])
	}
}

func TestAgentHonorsBrainChoice(t *testing.T) {
	a := NewAgent(NewBrain(LevelMedium, nil), time.Second)
	legal := cards(t, "2D", "8C", "KH")
	got := a.Decide(context.Background(), GameView{Hand: legal, Legal: legal})
	if got != cards(t, "8C")[0] {
		t.Fatalf("Decide = %v, want the brain's 8C lead", got)
	}
}
