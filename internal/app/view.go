package app

import "donkey/internal/domain"

// PlayerInfo is the public face of a player: everything except their
// cards.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsBot     bool   `json:"isBot"`
	Connected bool   `json:"connected"`
	Letters   string `json:"letters"`
	HandCount int    `json:"handCount"`
	Finished  bool   `json:"finished"`
}

// ViewState is one viewer's projection of a game: their own hand in
// full, everyone else's as counts. Reads never hit the pause gate.
type ViewState struct {
	GameID      string       `json:"gameId"`
	Status      GameStatus   `json:"status"`
	RequesterID string       `json:"requesterId"`
	Players     []PlayerInfo `json:"players"`

	RoundNumber int           `json:"roundNumber,omitempty"`
	TurnNumber  int           `json:"turnNumber,omitempty"`
	Hand        []domain.Card `json:"hand,omitempty"`
	Legal       []domain.Card `json:"legal,omitempty"`
	LeadSuit    *domain.Suit  `json:"leadSuit,omitempty"`
	InPlay      []domain.Play `json:"inPlay,omitempty"`
	DiscardSize int           `json:"discardSize"`

	ExpectedPlayerID string `json:"expectedPlayerId,omitempty"`
	BlockedForMs     int64  `json:"blockedForMs"`
	LoserID          string `json:"loserId,omitempty"`
}

// View projects the game for viewerID. Unknown viewers get the public
// projection with no hand.
func (s *Service) View(g *Game, viewerID string) ViewState {
	v := ViewState{
		GameID:       g.ID,
		Status:       g.Status,
		RequesterID:  g.RequesterID,
		LoserID:      g.LoserID,
		BlockedForMs: g.BlockRemaining(s.clock.Now()).Milliseconds(),
	}
	r := g.CurrentRound()
	for _, p := range g.Players {
		info := playerInfo(p)
		if r != nil {
			info.HandCount = len(r.Hands[p.ID])
			for _, seat := range r.Seats {
				if seat.PlayerID == p.ID {
					info.Finished = seat.Finished
				}
			}
		}
		v.Players = append(v.Players, info)
	}
	if r == nil {
		return v
	}
	v.RoundNumber = r.Number
	v.DiscardSize = len(r.Discard)
	if t := r.CurrentTurn(); t != nil {
		v.TurnNumber = t.Number
		v.LeadSuit = t.LeadSuit
		v.InPlay = r.InPlay()
	}
	if _, ok := r.Hands[viewerID]; ok {
		v.Hand = r.HandOf(viewerID)
		if legal, err := r.LegalFor(viewerID); err == nil {
			v.Legal = legal
		}
	}
	if expected, err := r.ExpectedPlayer(); err == nil {
		v.ExpectedPlayerID = expected
	}
	return v
}

func playerInfo(p *Player) PlayerInfo {
	return PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		IsBot:     p.IsBot,
		Connected: p.Connected,
		Letters:   string(p.Letters),
	}
}
