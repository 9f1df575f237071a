// Package store provides the persistence backends for game snapshots.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"donkey/internal/app"
)

// Memory keeps snapshots in process memory. Snapshots are stored as
// JSON so callers never share live pointers with the store.
type Memory struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, g *app.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = data
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*app.Game, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, app.ErrGameNotFound
	}
	var g app.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
