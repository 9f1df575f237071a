package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Store persists full Game snapshots keyed by game id. Get returns
// ErrGameNotFound for unknown ids.
type Store interface {
	Save(ctx context.Context, g *Game) error
	Get(ctx context.Context, id string) (*Game, error)
	Delete(ctx context.Context, id string) error
}

type regEntry struct {
	mu   sync.Mutex
	game *Game
}

// Registry serializes access per game: every mutation of one game runs
// under that game's own mutex, while different games proceed fully in
// parallel. Snapshots go to the store after each successful mutation.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*regEntry
	store   Store
	log     zerolog.Logger
}

func NewRegistry(store Store, log zerolog.Logger) *Registry {
	return &Registry{entries: make(map[string]*regEntry), store: store, log: log}
}

// Create registers a new game and persists its first snapshot.
func (r *Registry) Create(ctx context.Context, g *Game) error {
	r.mu.Lock()
	if _, exists := r.entries[g.ID]; exists {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.entries[g.ID] = &regEntry{game: g}
	r.mu.Unlock()
	return r.store.Save(ctx, g)
}

func (r *Registry) entry(ctx context.Context, id string) (*regEntry, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if ok {
		return e, nil
	}
	// Cache miss: rehydrate from the store (process restart).
	g, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	e = &regEntry{game: g}
	r.entries[id] = e
	return e, nil
}

// Apply runs fn against the game under its exclusive lock and persists
// the snapshot afterwards. The events fn produced are returned even
// when fn errored, since a transient gate rejection can follow emitted
// events.
func (r *Registry) Apply(ctx context.Context, id string, fn func(*Game) ([]Event, error)) ([]Event, error) {
	e, err := r.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	events, fnErr := fn(e.game)
	if fnErr == nil || len(events) > 0 || errors.Is(fnErr, ErrGameCorrupted) {
		if err := r.store.Save(ctx, e.game); err != nil {
			r.log.Error().Str("game", id).Err(err).Msg("snapshot save failed")
		}
	}
	return events, fnErr
}

// Read runs fn against the game under its lock without persisting.
func (r *Registry) Read(ctx context.Context, id string, fn func(*Game) error) error {
	e, err := r.entry(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}

// Remove drops the game from the registry and the store.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return r.store.Delete(ctx, id)
}

// IDs lists every game currently resident in the registry.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}
