package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"donkey/internal/app"
	"donkey/internal/bot"
	"donkey/internal/config"
	"donkey/internal/httpserver"
	"donkey/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		log = log.Level(lvl)
	}

	cfg, err := config.Load(envOr("GAME_CONFIG", "data/game_config.json"))
	if err != nil {
		log.Warn().Err(err).Msg("using default game config")
		cfg = config.Default()
	}
	if err := bot.LoadIdentities(envOr("BOT_IDENTITIES", "data/bot_identities.json")); err != nil {
		log.Warn().Err(err).Msg("using built-in bot identities")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal().Msg("SESSION_SECRET is required")
	}

	var gameStore app.Store
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		db, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Msg("open sqlite store")
		}
		defer db.Close()
		gameStore = db
		log.Info().Str("path", path).Msg("using sqlite store")
	} else {
		gameStore = store.NewMemory()
		log.Info().Msg("using in-memory store")
	}

	svc := app.NewService(cfg, app.SystemClock{}, rand.New(rand.NewSource(time.Now().UnixNano())), log)
	reg := app.NewRegistry(gameStore, log)
	auth := httpserver.NewAuth(secret, 24*time.Hour)
	srv := httpserver.New(svc, reg, auth, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go srv.RunTicker(ctx, 250*time.Millisecond)

	addr := envOr("LISTEN_ADDR", ":8080")
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("donkeyd listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
