package app

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFull            = errors.New("game is full")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrNotStarted          = errors.New("game has not started")
	ErrNotRequester        = errors.New("only the game creator may do this")
	ErrInsufficientPlayers = errors.New("not enough players to start")
	ErrUnknownPlayer       = errors.New("player is not in this game")
	ErrAlreadyJoined       = errors.New("player already joined")
	ErrGameCompleted       = errors.New("game is completed")
	ErrGameAbandoned       = errors.New("game was abandoned")
	ErrGameCorrupted       = errors.New("game state is corrupted")
)

// BlockedError rejects a play while the pause gate is closed. It is
// transient: the same call succeeds once Remaining has elapsed.
type BlockedError struct {
	Remaining time.Duration
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("action blocked for another %s", e.Remaining)
}
