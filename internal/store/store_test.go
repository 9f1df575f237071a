package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donkey/internal/app"
	"donkey/internal/domain"
)

func sampleGame(id string) *app.Game {
	r := domain.NewRound(1, []string{"a", "b"})
	r.Deal(domain.NewDeck(), 0)
	return &app.Game{
		ID:          id,
		Status:      app.GameActive,
		RequesterID: "a",
		Players: []*app.Player{
			{ID: "a", Name: "Alice", Letters: "DO", Connected: true},
			{ID: "b", Name: "Bot", IsBot: true, BotLevel: "hard", Connected: true},
		},
		Rounds: []*domain.Round{r},
	}
}

func roundTrip(t *testing.T, s app.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, app.ErrGameNotFound)

	g := sampleGame("g1")
	require.NoError(t, s.Save(ctx, g))

	got, err := s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, g.Status, got.Status)
	require.Len(t, got.Players, 2)
	assert.Equal(t, domain.Progression("DO"), got.Players[0].Letters)
	require.Len(t, got.Rounds, 1)
	assert.Equal(t, domain.DeckSize, got.Rounds[0].CardCount())

	// Overwrite with a newer snapshot.
	g.Status = app.GameDone
	require.NoError(t, s.Save(ctx, g))
	got, err = s.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, app.GameDone, got.Status)

	require.NoError(t, s.Delete(ctx, "g1"))
	_, err = s.Get(ctx, "g1")
	assert.ErrorIs(t, err, app.ErrGameNotFound)
}

func TestMemoryRoundTrip(t *testing.T) {
	roundTrip(t, NewMemory())
}

func TestMemoryCopiesSnapshots(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	g := sampleGame("g1")
	require.NoError(t, m.Save(ctx, g))

	// Mutating the original must not leak into the stored snapshot.
	g.Status = app.GameAbandoned
	got, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, app.GameActive, got.Status)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer s.Close()
	roundTrip(t, s)
}
