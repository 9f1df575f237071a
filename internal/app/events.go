package app

import "donkey/internal/domain"

// EventKind discriminates the events the orchestrator emits.
type EventKind string

const (
	EventPlayerJoined       EventKind = "player_joined"
	EventGameStarted        EventKind = "game_started"
	EventRoundStarted       EventKind = "round_started"
	EventCardDealt          EventKind = "card_dealt"
	EventCardPlayed         EventKind = "card_played"
	EventCutPerformed       EventKind = "cut_performed"
	EventTrickResolved      EventKind = "trick_resolved"
	EventRoundCompleted     EventKind = "round_completed"
	EventGameCompleted      EventKind = "game_completed"
	EventGameAbandoned      EventKind = "game_abandoned"
	EventPlayerDisconnected EventKind = "player_disconnected"
	EventPlayerReconnected  EventKind = "player_reconnected"
)

// Event is one state-change notification. An empty Recipients list
// means broadcast to everyone in the game.
type Event struct {
	Kind       EventKind `json:"kind"`
	GameID     string    `json:"gameId"`
	Payload    any       `json:"payload,omitempty"`
	Recipients []string  `json:"-"`
}

// For restricts the event to the given players.
func (e Event) For(playerIDs ...string) Event {
	e.Recipients = playerIDs
	return e
}

// VisibleTo reports whether playerID should receive the event.
func (e Event) VisibleTo(playerID string) bool {
	if len(e.Recipients) == 0 {
		return true
	}
	for _, id := range e.Recipients {
		if id == playerID {
			return true
		}
	}
	return false
}

type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

type GameStartedPayload struct {
	PlayerIDs []string `json:"playerIds"`
}

type RoundStartedPayload struct {
	RoundNumber   int      `json:"roundNumber"`
	SeatOrder     []string `json:"seatOrder"`
	StartPlayerID string   `json:"startPlayerId"`
}

// CardDealtPayload carries a full hand and is always targeted to its
// owner only.
type CardDealtPayload struct {
	RoundNumber int           `json:"roundNumber"`
	Hand        []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	PlayerID     string      `json:"playerId"`
	Card         domain.Card `json:"card"`
	TurnNumber   int         `json:"turnNumber"`
	TurnComplete bool        `json:"turnComplete"`
	NextPlayerID string      `json:"nextPlayerId,omitempty"`
}

// CutPerformedPayload is emitted the moment a cut is detected, before
// the collected cards move, so clients can show the cut during the
// pause.
type CutPerformedPayload struct {
	TurnNumber  int    `json:"turnNumber"`
	CutPlayerID string `json:"cutPlayerId"`
	WinnerID    string `json:"winnerId"`
}

type TrickResolvedPayload struct {
	TurnNumber int                `json:"turnNumber"`
	Result     domain.TrickResult `json:"result"`
	RoundEnded bool               `json:"roundEnded"`
}

type RoundCompletedPayload struct {
	RoundNumber int               `json:"roundNumber"`
	LoserID     string            `json:"loserId"`
	Letter      string            `json:"letter"`
	Letters     map[string]string `json:"letters"`
}

// ScoreEntry is one scoreboard row on game completion.
type ScoreEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Letters  string `json:"letters"`
	IsDonkey bool   `json:"isDonkey"`
}

type GameCompletedPayload struct {
	LoserID    string       `json:"loserId"`
	Scoreboard []ScoreEntry `json:"scoreboard"`
}

type PresencePayload struct {
	PlayerID string `json:"playerId"`
}
