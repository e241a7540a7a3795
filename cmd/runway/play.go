package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runway/internal/config"
)

var (
	flagDifficulty string
	flagPlayer     string
	flagSound      bool
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the menu.

Controls:
  Left/Right, A/D, H/L   Change lane
  Space, Up, W           Jump
  P                      Pause
  + / -                  Volume
  M                      Mute
  R                      Restart after game over
  Esc                    Back (when paused or game over)
  Q, Ctrl+C              Quit

Examples:
  runway play
  runway play --difficulty hard
  runway play --sound --player ada
  runway play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal or hard (default from config)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name runs are recorded under (default: current user)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	preset, err := config.ParsePreset(cfg.DefaultDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	_, err = playLocal(context.Background(), runtimeConfig(), sessionOptions{
		cfg:      cfg,
		preset:   preset,
		player:   playerName(flagPlayer),
		sound:    flagSound,
		spectate: flagSpectate,
		store:    store,
		logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
