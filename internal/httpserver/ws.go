package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"donkey/internal/app"
)

// wsEnvelope is the wire frame pushed to clients.
type wsEnvelope struct {
	T string `json:"t"`
	M any    `json:"m"`
}

type wsClient struct {
	playerID string
	send     chan wsEnvelope
}

// Hub fans orchestrator events out to the websocket clients of each
// game, honoring per-event recipient lists. Slow clients are dropped
// rather than allowed to stall the rest.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{} // gameID -> clients
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{clients: make(map[string]map[*wsClient]struct{}), log: log}
}

func (h *Hub) subscribe(gameID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[*wsClient]struct{})
	}
	h.clients[gameID][c] = struct{}{}
}

func (h *Hub) unsubscribe(gameID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[gameID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, gameID)
		}
	}
}

// Broadcast delivers each event to the subscribed clients it is
// visible to.
func (h *Hub) Broadcast(gameID string, events []app.Event) {
	if len(events) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		for _, e := range events {
			if !e.VisibleTo(c.playerID) {
				continue
			}
			select {
			case c.send <- wsEnvelope{T: string(e.Kind), M: e}:
			default:
				h.log.Warn().Str("game", gameID).Str("player", c.playerID).
					Msg("dropping slow websocket client")
			}
		}
	}
}

// serve pumps events to one websocket connection until it closes or
// ctx ends.
func (h *Hub) serve(ctx context.Context, conn *websocket.Conn, gameID, playerID string) {
	c := &wsClient{playerID: playerID, send: make(chan wsEnvelope, 64)}
	h.subscribe(gameID, c)
	defer h.unsubscribe(gameID, c)

	for {
		select {
		case <-ctx.Done():
			return
		case env := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, env)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
