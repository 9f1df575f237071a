package domain

import "errors"

// RouteKind says where a resolved trick's cards go.
type RouteKind string

const (
	// RouteDiscard removes the trick from play for the rest of the round.
	RouteDiscard RouteKind = "discard"
	// RouteCollected moves the whole trick into the winner's hand.
	RouteCollected RouteKind = "collected"
)

// TrickResult is the outcome of resolving one completed turn.
type TrickResult struct {
	WinnerID    string    `json:"winnerId"`
	CutPlayerID string    `json:"cutPlayerId,omitempty"`
	RoutedTo    RouteKind `json:"routedTo"`
	Cards       []Card    `json:"cards"`
}

// Cut reports whether the trick was broken by an off-suit play.
func (r TrickResult) Cut() bool { return r.CutPlayerID != "" }

// ErrIncompleteTurn reports resolution attempted before every active
// player has played. A caller bug, never a user-facing condition.
var ErrIncompleteTurn = errors.New("turn is not complete")

// ResolveTurn determines winner and routing for a completed turn.
// When every play follows the lead suit, the highest lead-suit card
// wins and the trick is discarded. When any play breaks suit the turn
// is CUT: the first off-suit player in play order is recorded as the
// cut player and the winner (still the highest lead-suit card)
// collects the whole trick into their hand.
func ResolveTurn(t *Turn, activePlayers int) (TrickResult, error) {
	if t == nil || t.LeadSuit == nil || len(t.Plays) < activePlayers || len(t.Plays) == 0 {
		return TrickResult{}, ErrIncompleteTurn
	}
	res := TrickResult{RoutedTo: RouteDiscard}
	best := -1
	for _, p := range t.Plays {
		if p.Card.Suit != *t.LeadSuit {
			if res.CutPlayerID == "" {
				res.CutPlayerID = p.PlayerID
			}
			continue
		}
		if p.Card.Value() > best {
			best = p.Card.Value()
			res.WinnerID = p.PlayerID
		}
	}
	if res.Cut() {
		res.RoutedTo = RouteCollected
	}
	res.Cards = make([]Card, 0, len(t.Plays))
	for _, p := range t.Plays {
		res.Cards = append(res.Cards, p.Card)
	}
	return res, nil
}
