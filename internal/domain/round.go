package domain

import "errors"

// RoundStatus tracks a round through its lifecycle.
type RoundStatus string

const (
	RoundSetup     RoundStatus = "setup"
	RoundDealing   RoundStatus = "dealing"
	RoundActive    RoundStatus = "active"
	RoundCompleted RoundStatus = "completed"
)

// TurnStatus tracks a single trick.
type TurnStatus string

const (
	TurnActive    TurnStatus = "active"
	TurnCut       TurnStatus = "cut"
	TurnCompleted TurnStatus = "completed"
)

// Play is one card played into a turn.
type Play struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
	Order    int    `json:"order"`
}

// Turn is one trick: a full cycle of single plays starting from
// StartPlayerID, in fixed seat order skipping finished players.
type Turn struct {
	Number        int        `json:"number"`
	StartPlayerID string     `json:"startPlayerId"`
	LeadSuit      *Suit      `json:"leadSuit,omitempty"`
	Plays         []Play     `json:"plays"`
	Status        TurnStatus `json:"status"`
	WinnerID      string     `json:"winnerId,omitempty"`
	CutPlayerID   string     `json:"cutPlayerId,omitempty"`
	// Routed flips once the trick's cards have left the table. Plays
	// stay recorded for history either way.
	Routed bool `json:"routed"`
}

// HasPlayed reports whether playerID already played into this turn.
func (t *Turn) HasPlayed(playerID string) bool {
	for _, p := range t.Plays {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Seat couples a player with their per-round finished flag. Slice
// order in Round.Seats is the fixed clockwise turn order.
type Seat struct {
	PlayerID string `json:"playerId"`
	Finished bool   `json:"finished"`
}

// Round is one complete deal of the deck and the turns played on it.
type Round struct {
	Number  int               `json:"number"`
	Status  RoundStatus       `json:"status"`
	Seats   []Seat            `json:"seats"`
	Hands   map[string][]Card `json:"hands"`
	Discard []Card            `json:"discard"`
	Turns   []*Turn           `json:"turns"`
	LoserID string            `json:"loserId,omitempty"`
}

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrIllegalCard    = errors.New("card may not be played")
	ErrRoundNotActive = errors.New("round is not active")
	ErrUnknownSeat    = errors.New("player not seated in round")
	ErrNoAceHolder    = errors.New("no hand holds the ace of spades")
)

// NewRound seats playerIDs in the given clockwise order.
func NewRound(number int, playerIDs []string) *Round {
	r := &Round{
		Number: number,
		Status: RoundSetup,
		Hands:  make(map[string][]Card, len(playerIDs)),
	}
	for _, id := range playerIDs {
		r.Seats = append(r.Seats, Seat{PlayerID: id})
		r.Hands[id] = []Card{}
	}
	return r
}

// Deal distributes the whole pre-shuffled deck one card at a time,
// round-robin starting at startSeat, then sorts each hand. Hand sizes
// differ by at most one when the deck does not divide evenly.
func (r *Round) Deal(deck []Card, startSeat int) {
	for i, c := range deck {
		seat := r.Seats[(startSeat+i)%len(r.Seats)]
		r.Hands[seat.PlayerID] = append(r.Hands[seat.PlayerID], c)
	}
	for id := range r.Hands {
		SortHand(r.Hands[id])
	}
	r.Status = RoundDealing
}

// Begin activates the round and opens turn 1, led by whoever was dealt
// the Ace of Spades.
func (r *Round) Begin() error {
	holder := ""
	for _, s := range r.Seats {
		if containsCard(r.Hands[s.PlayerID], AceOfSpades) {
			holder = s.PlayerID
			break
		}
	}
	if holder == "" {
		return ErrNoAceHolder
	}
	r.Status = RoundActive
	r.openTurn(holder)
	return nil
}

func (r *Round) openTurn(startPlayerID string) {
	r.Turns = append(r.Turns, &Turn{
		Number:        len(r.Turns) + 1,
		StartPlayerID: startPlayerID,
		Status:        TurnActive,
	})
}

// CurrentTurn returns the most recent turn, or nil before the deal.
func (r *Round) CurrentTurn() *Turn {
	if len(r.Turns) == 0 {
		return nil
	}
	return r.Turns[len(r.Turns)-1]
}

func (r *Round) seatIndex(playerID string) int {
	for i, s := range r.Seats {
		if s.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// ActiveCount returns how many seats still hold cards this round.
func (r *Round) ActiveCount() int {
	n := 0
	for _, s := range r.Seats {
		if !s.Finished {
			n++
		}
	}
	return n
}

// HandOf returns a copy of playerID's current hand.
func (r *Round) HandOf(playerID string) []Card {
	return append([]Card(nil), r.Hands[playerID]...)
}

// ExpectedPlayer returns who must play next in the current turn: the
// first active seat clockwise from the turn's start player that has
// not yet played. Empty when the turn already holds every play.
func (r *Round) ExpectedPlayer() (string, error) {
	t := r.CurrentTurn()
	if r.Status != RoundActive || t == nil || t.Status != TurnActive {
		return "", ErrRoundNotActive
	}
	start := r.seatIndex(t.StartPlayerID)
	if start < 0 {
		return "", ErrUnknownSeat
	}
	for i := 0; i < len(r.Seats); i++ {
		seat := r.Seats[(start+i)%len(r.Seats)]
		if seat.Finished || t.HasPlayed(seat.PlayerID) {
			continue
		}
		return seat.PlayerID, nil
	}
	return "", nil
}

// LegalFor returns the legal plays for playerID in the current turn,
// including the forced ace-of-spades opening of the very first turn of
// a game.
func (r *Round) LegalFor(playerID string) ([]Card, error) {
	t := r.CurrentTurn()
	if r.Status != RoundActive || t == nil || t.Status != TurnActive {
		return nil, ErrRoundNotActive
	}
	legal, err := LegalPlays(r.Hands[playerID], t.LeadSuit)
	if err != nil {
		return nil, err
	}
	if r.Number == 1 && t.Number == 1 && len(t.Plays) == 0 &&
		containsCard(r.Hands[playerID], AceOfSpades) {
		return []Card{AceOfSpades}, nil
	}
	return legal, nil
}

// PlayCard validates and applies one play by playerID, moving the card
// from their hand onto the table. It reports whether the play
// completed the turn (every active player has now played).
func (r *Round) PlayCard(playerID string, card Card) (bool, error) {
	t := r.CurrentTurn()
	if r.Status != RoundActive || t == nil || t.Status != TurnActive {
		return false, ErrRoundNotActive
	}
	expected, err := r.ExpectedPlayer()
	if err != nil {
		return false, err
	}
	if expected != playerID {
		return false, ErrNotYourTurn
	}
	legal, err := r.LegalFor(playerID)
	if err != nil {
		return false, err
	}
	if !containsCard(legal, card) {
		return false, ErrIllegalCard
	}
	r.Hands[playerID] = removeCard(r.Hands[playerID], card)
	if t.LeadSuit == nil {
		s := card.Suit
		t.LeadSuit = &s
	}
	t.Plays = append(t.Plays, Play{PlayerID: playerID, Card: card, Order: len(t.Plays) + 1})
	return len(t.Plays) >= r.ActiveCount(), nil
}

// ResolveCurrentTurn resolves the completed current turn, recording
// winner, cut player and terminal status on the turn itself. The
// trick's cards stay on the table until ApplyTrickResult routes them,
// so viewers can see the full trick during the pause window.
func (r *Round) ResolveCurrentTurn() (TrickResult, error) {
	t := r.CurrentTurn()
	if r.Status != RoundActive || t == nil || t.Status != TurnActive {
		return TrickResult{}, ErrRoundNotActive
	}
	res, err := ResolveTurn(t, r.ActiveCount())
	if err != nil {
		return TrickResult{}, err
	}
	t.WinnerID = res.WinnerID
	t.CutPlayerID = res.CutPlayerID
	if res.Cut() {
		t.Status = TurnCut
	} else {
		t.Status = TurnCompleted
	}
	return res, nil
}

// ApplyTrickResult routes the resolved trick's cards off the table,
// marks newly emptied hands finished, and either opens the next turn
// (led by the trick winner) or completes the round. It reports whether
// the round ended; LoserID is set when it did.
func (r *Round) ApplyTrickResult(res TrickResult) bool {
	if t := r.CurrentTurn(); t != nil {
		t.Routed = true
	}
	if res.RoutedTo == RouteCollected {
		r.Hands[res.WinnerID] = append(r.Hands[res.WinnerID], res.Cards...)
		SortHand(r.Hands[res.WinnerID])
	} else {
		r.Discard = append(r.Discard, res.Cards...)
	}
	for i := range r.Seats {
		if !r.Seats[i].Finished && len(r.Hands[r.Seats[i].PlayerID]) == 0 {
			r.Seats[i].Finished = true
		}
	}
	switch r.ActiveCount() {
	case 0:
		// Every remaining hand emptied on a discarded trick. The trick
		// winner would have led next and is the last to get rid of
		// cards in turn order, so they take the loss.
		r.LoserID = res.WinnerID
	case 1:
		for _, s := range r.Seats {
			if !s.Finished {
				r.LoserID = s.PlayerID
			}
		}
	default:
		r.openTurn(res.WinnerID)
		return false
	}
	r.Status = RoundCompleted
	return true
}

// CardCount totals every card the round tracks: hands, discard, and
// any trick still on the table. It equals DeckSize at all times while
// a round is live; the orchestrator checks this after every mutation.
func (r *Round) CardCount() int {
	n := len(r.Discard)
	for _, h := range r.Hands {
		n += len(h)
	}
	for _, t := range r.Turns {
		if !t.Routed {
			n += len(t.Plays)
		}
	}
	return n
}

// InPlay returns the cards currently on the table, in play order.
func (r *Round) InPlay() []Play {
	t := r.CurrentTurn()
	if t == nil || t.Routed {
		return nil
	}
	return append([]Play(nil), t.Plays...)
}
