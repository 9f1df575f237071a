package domain

import "errors"

// Suit identifies one of the four French suits.
type Suit string

const (
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists every suit in canonical sort order, diamonds lowest.
var Suits = []Suit{Diamonds, Clubs, Hearts, Spades}

var suitOrder = map[Suit]int{Diamonds: 0, Clubs: 1, Hearts: 2, Spades: 3}

// Rank is the printed rank symbol of a card ("2".."10", "J", "Q", "K", "A").
type Rank string

// Ranks lists every rank in ascending value order.
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var rankValues = map[Rank]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 11, "Q": 12, "K": 13, "A": 14,
}

var (
	// ErrInvalidRank reports a rank symbol outside the 13 valid ones.
	ErrInvalidRank = errors.New("invalid rank")
	// ErrInvalidCard reports an unparseable card code.
	ErrInvalidCard = errors.New("invalid card code")
)

// RankValue maps a rank symbol to its numeric value, ace high (2..14).
func RankValue(r Rank) (int, error) {
	v, ok := rankValues[r]
	if !ok {
		return 0, ErrInvalidRank
	}
	return v, nil
}

// Card is a single playing card. Its location is implied by whichever
// container currently holds it: deck, a hand, a turn's plays, or the
// discard pile.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// Value returns the numeric rank value, ace high. Zero for a card that
// was never produced by NewDeck.
func (c Card) Value() int { return rankValues[c.Rank] }

var suitCodes = map[Suit]string{Diamonds: "D", Clubs: "C", Hearts: "H", Spades: "S"}
var codeSuits = map[byte]Suit{'D': Diamonds, 'C': Clubs, 'H': Hearts, 'S': Spades}

// Code returns the compact identifier used on the wire, e.g. "AS", "10H".
func (c Card) Code() string { return string(c.Rank) + suitCodes[c.Suit] }

// CardFromCode parses a compact card code back into a Card.
func CardFromCode(code string) (Card, error) {
	if len(code) < 2 {
		return Card{}, ErrInvalidCard
	}
	suit, ok := codeSuits[code[len(code)-1]]
	if !ok {
		return Card{}, ErrInvalidCard
	}
	rank := Rank(code[:len(code)-1])
	if _, err := RankValue(rank); err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// AceOfSpades opens the first turn of every round.
var AceOfSpades = Card{Rank: "A", Suit: Spades}
