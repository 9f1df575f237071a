// Package config loads the game tuning parameters from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds every tunable the engine reads at runtime.
type GameConfig struct {
	MinPlayers int `json:"min_players"`
	MaxPlayers int `json:"max_players"`

	// InterCardDelayMs blocks the game for this long per card moved
	// when dealing, discarding or collecting a trick.
	InterCardDelayMs int `json:"inter_card_delay_ms"`
	// PostPlayPauseMs blocks the game after every completed turn so
	// players can see the full trick before it leaves the table.
	PostPlayPauseMs int `json:"post_play_pause_ms"`

	BotDecisionTimeoutMs int    `json:"bot_decision_timeout_ms"`
	DefaultBotLevel      string `json:"default_bot_level"`
}

var (
	loadOnce sync.Once
	loaded   GameConfig
	loadErr  error
)

// Default returns the built-in configuration used when no file is
// supplied (tests, and as the fallback for partial files).
func Default() GameConfig {
	return GameConfig{
		MinPlayers:           2,
		MaxPlayers:           8,
		InterCardDelayMs:     250,
		PostPlayPauseMs:      3000,
		BotDecisionTimeoutMs: 1000,
		DefaultBotLevel:      "medium",
	}
}

// Load reads the configuration from path exactly once per process.
// Missing fields keep their defaults.
func Load(path string) (GameConfig, error) {
	loadOnce.Do(func() {
		loaded = Default()
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("read game config: %w", err)
			return
		}
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("parse game config: %w", err)
			return
		}
		if err := loaded.Validate(); err != nil {
			loadErr = err
		}
	})
	return loaded, loadErr
}

// Validate rejects configurations the engine cannot run with.
func (c GameConfig) Validate() error {
	if c.MinPlayers < 2 {
		return fmt.Errorf("min_players %d below 2", c.MinPlayers)
	}
	if c.MaxPlayers < c.MinPlayers {
		return fmt.Errorf("max_players %d below min_players %d", c.MaxPlayers, c.MinPlayers)
	}
	if c.InterCardDelayMs < 0 || c.PostPlayPauseMs < 0 || c.BotDecisionTimeoutMs < 0 {
		return fmt.Errorf("negative duration in config")
	}
	return nil
}
