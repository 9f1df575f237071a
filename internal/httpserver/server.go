// Package httpserver adapts the game orchestrator to HTTP and
// websockets. It holds no game logic: every mutation goes through the
// registry into app.Service and every resulting event through the hub.
package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"donkey/internal/app"
	"donkey/internal/domain"
)

// Server carries the handler dependencies.
type Server struct {
	svc  *app.Service
	reg  *app.Registry
	auth *Auth
	hub  *Hub
	log  zerolog.Logger
}

func New(svc *app.Service, reg *app.Registry, auth *Auth, log zerolog.Logger) *Server {
	return &Server{svc: svc, reg: reg, auth: auth, hub: NewHub(log), log: log}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Post("/api/games", s.handleCreate)
		r.Get("/api/games/{gameID}", s.handleState)
		r.Post("/api/games/{gameID}/join", s.handleJoin)
		r.Post("/api/games/{gameID}/bots", s.handleAddBot)
		r.Post("/api/games/{gameID}/start", s.handleStart)
		r.Post("/api/games/{gameID}/abandon", s.handleAbandon)
		r.Post("/api/games/{gameID}/play", s.handlePlay)
		r.Get("/api/games/{gameID}/ws", s.handleWS)
	})
	return r
}

// RunTicker drives time-based advancement (pending tricks, bot turns)
// for every resident game until ctx ends.
func (s *Server) RunTicker(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, id := range s.reg.IDs() {
				events, err := s.reg.Apply(ctx, id, func(g *app.Game) ([]app.Event, error) {
					return s.svc.Tick(ctx, g)
				})
				s.hub.Broadcast(id, events)
				if err != nil && !errors.Is(err, app.ErrGameCompleted) && !errors.Is(err, app.ErrGameAbandoned) {
					s.log.Error().Str("game", id).Err(err).Msg("tick failed")
				}
			}
		}
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	playerID := newID("p")
	token, err := s.auth.Issue(playerID, req.Name)
	if err != nil {
		http.Error(w, "could not issue session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"playerId": playerID,
		"name":     req.Name,
		"token":    token,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	g := s.svc.NewGame(newID("g"), app.Player{ID: id.PlayerID, Name: id.Name})
	if err := s.reg.Create(r.Context(), g); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.svc.View(g, id.PlayerID))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")
	var view app.ViewState
	err := s.reg.Read(r.Context(), gameID, func(g *app.Game) error {
		view = s.svc.View(g, id.PlayerID)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	s.apply(w, r, func(g *app.Game) ([]app.Event, error) {
		return s.svc.Join(g, app.Player{ID: id.PlayerID, Name: id.Name})
	})
}

func (s *Server) handleAddBot(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req struct {
		Level string `json:"level"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.apply(w, r, func(g *app.Game) ([]app.Event, error) {
		return s.svc.AddBot(g, id.PlayerID, req.Level)
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	s.apply(w, r, func(g *app.Game) ([]app.Event, error) {
		return s.svc.Start(g, id.PlayerID)
	})
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	s.apply(w, r, func(g *app.Game) ([]app.Event, error) {
		return s.svc.Abandon(g, id.PlayerID)
	})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req struct {
		Card string `json:"card"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Card == "" {
		http.Error(w, "card required", http.StatusBadRequest)
		return
	}
	s.apply(w, r, func(g *app.Game) ([]app.Event, error) {
		return s.svc.PlayCard(g, id.PlayerID, req.Card)
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")

	known := false
	err := s.reg.Read(r.Context(), gameID, func(g *app.Game) error {
		known = g.Player(id.PlayerID) != nil
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if known {
		s.setPresence(gameID, id.PlayerID, true)
		defer s.setPresence(gameID, id.PlayerID, false)
	}
	// Clients never send; CloseRead cancels the context when they go.
	ctx := conn.CloseRead(r.Context())
	s.hub.serve(ctx, conn, gameID, id.PlayerID)
}

// setPresence flips a player's connected flag outside the request
// context, since disconnects arrive after the request is done.
func (s *Server) setPresence(gameID, playerID string, connected bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events, err := s.reg.Apply(ctx, gameID, func(g *app.Game) ([]app.Event, error) {
		return s.svc.SetConnected(g, playerID, connected)
	})
	if err != nil {
		s.log.Warn().Str("game", gameID).Str("player", playerID).Err(err).Msg("presence update failed")
	}
	s.hub.Broadcast(gameID, events)
}

// apply runs a mutation, broadcasts its events, and answers with the
// caller's fresh view of the game.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, fn func(*app.Game) ([]app.Event, error)) {
	id, _ := IdentityFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")
	events, err := s.reg.Apply(r.Context(), gameID, fn)
	s.hub.Broadcast(gameID, events)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var view app.ViewState
	if err := s.reg.Read(r.Context(), gameID, func(g *app.Game) error {
		view = s.svc.View(g, id.PlayerID)
		return nil
	}); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var blocked *app.BlockedError
	if errors.As(err, &blocked) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":        "action blocked",
			"retryAfterMs": blocked.Remaining.Milliseconds(),
		})
		return
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrNotRequester), errors.Is(err, app.ErrUnknownPlayer):
		status = http.StatusForbidden
	case errors.Is(err, app.ErrGameFull),
		errors.Is(err, app.ErrAlreadyStarted),
		errors.Is(err, app.ErrAlreadyJoined),
		errors.Is(err, app.ErrInsufficientPlayers),
		errors.Is(err, app.ErrNotStarted),
		errors.Is(err, app.ErrGameCompleted),
		errors.Is(err, app.ErrGameAbandoned):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrIllegalCard),
		errors.Is(err, domain.ErrRoundNotActive),
		errors.Is(err, domain.ErrInvalidCard),
		errors.Is(err, domain.ErrInvalidRank):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newID(prefix string) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return prefix + "-" + hex.EncodeToString(b)
}
