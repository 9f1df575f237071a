// Package app orchestrates games: lifecycle, rounds, the pause gate,
// letter progression, and bot turns. All game-rule mechanics live in
// internal/domain; this package sequences them.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"donkey/internal/bot"
	"donkey/internal/config"
	"donkey/internal/domain"
)

// Service runs the game rules over Game aggregates. It holds no
// per-game state itself: callers pass the aggregate in and collect the
// emitted events, so concurrent games never share anything mutable.
type Service struct {
	cfg   config.GameConfig
	clock Clock
	log   zerolog.Logger

	// The registry serializes calls per game only; the rng is shared
	// across games and needs its own lock.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService wires a service. A nil rng gets a time-seeded one; tests
// pass a fixed seed and a fake clock.
func NewService(cfg config.GameConfig, clock Clock, rng *rand.Rand, log zerolog.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{cfg: cfg, clock: clock, rng: rng, log: log}
}

func (s *Service) shuffledDeck() []domain.Card {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return domain.Shuffle(s.rng, domain.NewDeck())
}

func (s *Service) randSeat(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// brainRng derives a private rng per bot decision so brains never
// touch the shared one concurrently.
func (s *Service) brainRng() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewSource(s.rng.Int63()))
}

func (s *Service) interCardDelay() time.Duration {
	return time.Duration(s.cfg.InterCardDelayMs) * time.Millisecond
}

func (s *Service) postPlayPause() time.Duration {
	return time.Duration(s.cfg.PostPlayPauseMs) * time.Millisecond
}

// NewGame creates a lobby with the requesting player already seated.
func (s *Service) NewGame(id string, requester Player) *Game {
	requester.Connected = true
	g := &Game{
		ID:          id,
		Status:      GameLobby,
		RequesterID: requester.ID,
		Players:     []*Player{&requester},
		CreatedAt:   s.clock.Now(),
	}
	s.log.Info().Str("game", id).Str("requester", requester.ID).Msg("game created")
	return g
}

// Join seats a player in the lobby.
func (s *Service) Join(g *Game, player Player) ([]Event, error) {
	if err := s.guard(g); err != nil {
		return nil, err
	}
	if g.Status != GameLobby {
		return nil, ErrAlreadyStarted
	}
	if len(g.Players) >= s.cfg.MaxPlayers {
		return nil, ErrGameFull
	}
	if g.Player(player.ID) != nil {
		return nil, ErrAlreadyJoined
	}
	player.Connected = true
	player.JoinOrder = len(g.Players)
	g.Players = append(g.Players, &player)
	s.log.Info().Str("game", g.ID).Str("player", player.ID).Msg("player joined")
	return []Event{{
		Kind:    EventPlayerJoined,
		GameID:  g.ID,
		Payload: PlayerJoinedPayload{Player: playerInfo(&player)},
	}}, nil
}

// AddBot seats a bot from the identity pool. Only the creator may add
// bots, and only in the lobby.
func (s *Service) AddBot(g *Game, requesterID, level string) ([]Event, error) {
	if err := s.guard(g); err != nil {
		return nil, err
	}
	if g.Status != GameLobby {
		return nil, ErrAlreadyStarted
	}
	if requesterID != g.RequesterID {
		return nil, ErrNotRequester
	}
	if len(g.Players) >= s.cfg.MaxPlayers {
		return nil, ErrGameFull
	}
	bots := 0
	for _, p := range g.Players {
		if p.IsBot {
			bots++
		}
	}
	identity := bot.PickIdentity(bots)
	if level == "" {
		level = identity.Level
	}
	if level == "" {
		level = s.cfg.DefaultBotLevel
	}
	player := Player{
		ID:        fmt.Sprintf("%s-bot-%d", g.ID, bots+1),
		Name:      identity.Name,
		IsBot:     true,
		BotLevel:  string(bot.ParseLevel(level)),
		Connected: true,
		JoinOrder: len(g.Players),
	}
	g.Players = append(g.Players, &player)
	s.log.Info().Str("game", g.ID).Str("bot", player.ID).Str("level", player.BotLevel).Msg("bot added")
	return []Event{{
		Kind:    EventPlayerJoined,
		GameID:  g.ID,
		Payload: PlayerJoinedPayload{Player: playerInfo(&player)},
	}}, nil
}

// Start begins the game and deals round 1. Only the creator may start.
func (s *Service) Start(g *Game, requesterID string) ([]Event, error) {
	if err := s.guard(g); err != nil {
		return nil, err
	}
	if g.Status != GameLobby {
		return nil, ErrAlreadyStarted
	}
	if requesterID != g.RequesterID {
		return nil, ErrNotRequester
	}
	if len(g.Players) < s.cfg.MinPlayers {
		return nil, ErrInsufficientPlayers
	}
	g.Status = GameActive
	events := []Event{{
		Kind:    EventGameStarted,
		GameID:  g.ID,
		Payload: GameStartedPayload{PlayerIDs: g.PlayerIDs()},
	}}
	roundEvents, err := s.startRound(g)
	if err != nil {
		return events, err
	}
	s.log.Info().Str("game", g.ID).Int("players", len(g.Players)).Msg("game started")
	return append(events, roundEvents...), nil
}

// Abandon terminates the game. Only the creator may abandon, at any
// point before completion.
func (s *Service) Abandon(g *Game, requesterID string) ([]Event, error) {
	if err := s.guard(g); err != nil {
		return nil, err
	}
	if requesterID != g.RequesterID {
		return nil, ErrNotRequester
	}
	g.Status = GameAbandoned
	g.Pending = nil
	s.log.Info().Str("game", g.ID).Msg("game abandoned")
	return []Event{{Kind: EventGameAbandoned, GameID: g.ID}}, nil
}

// SetConnected records a human player's presence. A disconnected
// player on turn blocks advancement until they return.
func (s *Service) SetConnected(g *Game, playerID string, connected bool) ([]Event, error) {
	p := g.Player(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.IsBot || p.Connected == connected {
		return nil, nil
	}
	p.Connected = connected
	kind := EventPlayerDisconnected
	if connected {
		kind = EventPlayerReconnected
	}
	return []Event{{Kind: kind, GameID: g.ID, Payload: PresencePayload{PlayerID: playerID}}}, nil
}

// PlayCard is the single mutation entrypoint for trick logic. Events
// already emitted are returned even alongside an error, so transports
// must always flush them.
func (s *Service) PlayCard(g *Game, playerID, cardCode string) ([]Event, error) {
	if err := s.guard(g); err != nil {
		return nil, err
	}
	if g.Status == GameLobby {
		return nil, ErrNotStarted
	}
	events, err := s.applyPending(g)
	if err != nil {
		return events, err
	}
	if g.Status != GameActive {
		return events, ErrGameCompleted
	}
	now := s.clock.Now()
	if g.Blocked(now) {
		return events, &BlockedError{Remaining: g.BlockRemaining(now)}
	}
	if g.Player(playerID) == nil {
		return events, ErrUnknownPlayer
	}
	card, err := domain.CardFromCode(cardCode)
	if err != nil {
		return events, err
	}

	r := g.CurrentRound()
	done, err := r.PlayCard(playerID, card)
	if err != nil {
		return events, err
	}
	next := ""
	if !done {
		next, _ = r.ExpectedPlayer()
	}
	events = append(events, Event{
		Kind:   EventCardPlayed,
		GameID: g.ID,
		Payload: CardPlayedPayload{
			PlayerID:     playerID,
			Card:         card,
			TurnNumber:   r.CurrentTurn().Number,
			TurnComplete: done,
			NextPlayerID: next,
		},
	})
	g.BlockFor(now, s.postPlayPause())

	if done {
		res, err := r.ResolveCurrentTurn()
		if err != nil {
			return events, s.corrupt(g, fmt.Errorf("resolve turn: %w", err))
		}
		g.Pending = &PendingTrick{TurnNumber: r.CurrentTurn().Number, Result: res}
		if res.Cut() {
			events = append(events, Event{
				Kind:   EventCutPerformed,
				GameID: g.ID,
				Payload: CutPerformedPayload{
					TurnNumber:  r.CurrentTurn().Number,
					CutPlayerID: res.CutPlayerID,
					WinnerID:    res.WinnerID,
				},
			})
		}
		// The gate covers the pause plus the card-movement sequence.
		g.BlockFor(now, s.postPlayPause()+time.Duration(len(res.Cards))*s.interCardDelay())
	}
	if err := s.checkConservation(g); err != nil {
		return events, err
	}
	return events, nil
}

// Tick drives everything time-based: it applies a pending trick once
// the gate opens and then runs the next bot turn, if one is due. The
// transport calls it on a coarse interval; tests call it directly with
// a fake clock.
func (s *Service) Tick(ctx context.Context, g *Game) ([]Event, error) {
	if g == nil || g.Corrupted || g.Status != GameActive {
		return nil, nil
	}
	events, err := s.applyPending(g)
	if err != nil || g.Status != GameActive {
		return events, err
	}
	if g.Blocked(s.clock.Now()) {
		return events, nil
	}
	r := g.CurrentRound()
	if r == nil || r.Status != domain.RoundActive {
		return events, nil
	}
	expectedID, err := r.ExpectedPlayer()
	if err != nil || expectedID == "" {
		return events, nil
	}
	p := g.Player(expectedID)
	if p == nil {
		return events, s.corrupt(g, fmt.Errorf("expected player %s not in game", expectedID))
	}
	// Humans play through PlayCard; a disconnected human on turn
	// blocks advancement until reconnection.
	if !p.IsBot {
		return events, nil
	}
	view, err := s.botView(g, p)
	if err != nil {
		return events, err
	}
	agent := bot.NewAgent(
		bot.NewBrain(bot.ParseLevel(p.BotLevel), s.brainRng()),
		time.Duration(s.cfg.BotDecisionTimeoutMs)*time.Millisecond,
	)
	choice := agent.Decide(ctx, view)
	playEvents, err := s.PlayCard(g, p.ID, choice.Code())
	return append(events, playEvents...), err
}

// startRound shuffles, deals from a random seat, opens turn 1 and
// closes the gate for the length of the deal sequence.
func (s *Service) startRound(g *Game) ([]Event, error) {
	r := domain.NewRound(len(g.Rounds)+1, g.PlayerIDs())
	r.Deal(s.shuffledDeck(), s.randSeat(len(g.Players)))
	if err := r.Begin(); err != nil {
		return nil, s.corrupt(g, fmt.Errorf("begin round: %w", err))
	}
	g.Rounds = append(g.Rounds, r)
	g.BlockFor(s.clock.Now(), time.Duration(domain.DeckSize)*s.interCardDelay())

	events := []Event{{
		Kind:   EventRoundStarted,
		GameID: g.ID,
		Payload: RoundStartedPayload{
			RoundNumber:   r.Number,
			SeatOrder:     g.PlayerIDs(),
			StartPlayerID: r.CurrentTurn().StartPlayerID,
		},
	}}
	for _, p := range g.Players {
		events = append(events, Event{
			Kind:    EventCardDealt,
			GameID:  g.ID,
			Payload: CardDealtPayload{RoundNumber: r.Number, Hand: r.HandOf(p.ID)},
		}.For(p.ID))
	}
	if err := s.checkConservation(g); err != nil {
		return events, err
	}
	s.log.Info().Str("game", g.ID).Int("round", r.Number).
		Str("leader", r.CurrentTurn().StartPlayerID).Msg("round started")
	return events, nil
}

// applyPending routes a resolved trick once the gate has opened, then
// handles whatever follows: next turn, next round, or game end.
func (s *Service) applyPending(g *Game) ([]Event, error) {
	if g.Pending == nil || g.Blocked(s.clock.Now()) {
		return nil, nil
	}
	pending := g.Pending
	g.Pending = nil
	r := g.CurrentRound()
	ended := r.ApplyTrickResult(pending.Result)
	events := []Event{{
		Kind:   EventTrickResolved,
		GameID: g.ID,
		Payload: TrickResolvedPayload{
			TurnNumber: pending.TurnNumber,
			Result:     pending.Result,
			RoundEnded: ended,
		},
	}}
	if err := s.checkConservation(g); err != nil {
		return events, err
	}
	if !ended {
		return events, nil
	}

	loser := g.Player(r.LoserID)
	if loser == nil {
		return events, s.corrupt(g, fmt.Errorf("round loser %s not in game", r.LoserID))
	}
	next, err := loser.Letters.Advance()
	if err != nil {
		return events, s.corrupt(g, fmt.Errorf("advance letters of %s: %w", loser.ID, err))
	}
	loser.Letters = next
	events = append(events, Event{
		Kind:   EventRoundCompleted,
		GameID: g.ID,
		Payload: RoundCompletedPayload{
			RoundNumber: r.Number,
			LoserID:     loser.ID,
			Letter:      next.LastLetter(),
			Letters:     g.Letters(),
		},
	})
	s.log.Info().Str("game", g.ID).Int("round", r.Number).
		Str("loser", loser.ID).Str("letters", string(next)).Msg("round completed")

	if next.Complete() {
		g.Status = GameDone
		g.LoserID = loser.ID
		events = append(events, Event{
			Kind:    EventGameCompleted,
			GameID:  g.ID,
			Payload: GameCompletedPayload{LoserID: loser.ID, Scoreboard: scoreboard(g)},
		})
		s.log.Info().Str("game", g.ID).Str("donkey", loser.ID).Msg("game completed")
		return events, nil
	}
	roundEvents, err := s.startRound(g)
	return append(events, roundEvents...), err
}

// botView assembles the restricted view a brain is allowed to see.
func (s *Service) botView(g *Game, p *Player) (bot.GameView, error) {
	r := g.CurrentRound()
	legal, err := r.LegalFor(p.ID)
	if err != nil {
		return bot.GameView{}, err
	}
	t := r.CurrentTurn()
	counts := make(map[string]int, len(g.Players))
	for id := range r.Hands {
		counts[id] = len(r.Hands[id])
	}
	var history []domain.Turn
	for _, turn := range r.Turns {
		if turn.Status != domain.TurnActive {
			history = append(history, *turn)
		}
	}
	return bot.GameView{
		SelfID:      p.ID,
		RoundNumber: r.Number,
		TurnNumber:  t.Number,
		Hand:        r.HandOf(p.ID),
		Legal:       legal,
		LeadSuit:    t.LeadSuit,
		InPlay:      r.InPlay(),
		HandCounts:  counts,
		Letters:     g.Letters(),
		History:     history,
	}, nil
}

func (s *Service) guard(g *Game) error {
	if g == nil {
		return ErrGameNotFound
	}
	if g.Corrupted {
		return ErrGameCorrupted
	}
	switch g.Status {
	case GameDone:
		return ErrGameCompleted
	case GameAbandoned:
		return ErrGameAbandoned
	}
	return nil
}

// checkConservation verifies the 52-card invariant after a mutation
// and poisons the game on violation rather than playing on silently.
func (s *Service) checkConservation(g *Game) error {
	r := g.CurrentRound()
	if r == nil || r.Status == domain.RoundCompleted {
		return nil
	}
	if got := r.CardCount(); got != domain.DeckSize {
		return s.corrupt(g, fmt.Errorf("card count %d, want %d", got, domain.DeckSize))
	}
	return nil
}

func (s *Service) corrupt(g *Game, cause error) error {
	g.Corrupted = true
	s.log.Error().Str("game", g.ID).Err(cause).Msg("game state corrupted")
	return ErrGameCorrupted
}

func scoreboard(g *Game) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(g.Players))
	for _, p := range g.Players {
		out = append(out, ScoreEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Letters:  string(p.Letters),
			IsDonkey: p.Letters.Complete(),
		})
	}
	return out
}
