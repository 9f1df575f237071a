package app

import (
	"time"

	"donkey/internal/domain"
)

// GameStatus tracks a game through its lifecycle.
type GameStatus string

const (
	GameLobby     GameStatus = "lobby"
	GameActive    GameStatus = "active"
	GameDone      GameStatus = "completed"
	GameAbandoned GameStatus = "abandoned"
)

// Player is a participant of one game, human or bot.
type Player struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	IsBot     bool               `json:"isBot"`
	BotLevel  string             `json:"botLevel,omitempty"`
	Connected bool               `json:"connected"`
	JoinOrder int                `json:"joinOrder"`
	Letters   domain.Progression `json:"letters"`
}

// PendingTrick is a resolved trick whose cards are still on the table,
// waiting for the pause gate to open before they are routed.
type PendingTrick struct {
	TurnNumber int                `json:"turnNumber"`
	Result     domain.TrickResult `json:"result"`
}

// Game is the aggregate every orchestrator call operates on. It is a
// plain serializable value: one instance per game, no shared state
// between games.
type Game struct {
	ID          string          `json:"id"`
	Status      GameStatus      `json:"status"`
	RequesterID string          `json:"requesterId"`
	Players     []*Player       `json:"players"`
	Rounds      []*domain.Round `json:"rounds"`
	LoserID     string          `json:"loserId,omitempty"`

	// Corrupted flips when a card-conservation check fails. A
	// corrupted game rejects all further mutations.
	Corrupted bool `json:"corrupted"`

	// BlockedUntil is the pause gate: a deadline checked against the
	// injected clock on every call, never a live timer.
	BlockedUntil time.Time     `json:"blockedUntil"`
	Pending      *PendingTrick `json:"pending,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Player finds a participant by id, nil when absent.
func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentRound returns the round in progress, nil before the first
// deal.
func (g *Game) CurrentRound() *domain.Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return g.Rounds[len(g.Rounds)-1]
}

// PlayerIDs returns every participant id in join order.
func (g *Game) PlayerIDs() []string {
	ids := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Letters returns every player's progression keyed by id.
func (g *Game) Letters() map[string]string {
	out := make(map[string]string, len(g.Players))
	for _, p := range g.Players {
		out[p.ID] = string(p.Letters)
	}
	return out
}

// BlockFor extends the pause gate by d from now. The gate only ever
// extends; a shorter new deadline leaves the old one in place.
func (g *Game) BlockFor(now time.Time, d time.Duration) {
	until := now.Add(d)
	if until.After(g.BlockedUntil) {
		g.BlockedUntil = until
	}
}

// Blocked reports whether the pause gate is closed at now.
func (g *Game) Blocked(now time.Time) bool {
	return now.Before(g.BlockedUntil)
}

// BlockRemaining returns how long the gate stays closed from now,
// zero when open.
func (g *Game) BlockRemaining(now time.Time) time.Duration {
	if !g.Blocked(now) {
		return 0
	}
	return g.BlockedUntil.Sub(now)
}
