package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty and play from an interactive menu",
	Long: `Start runway in interactive menu mode.

Pick a difficulty with the arrow keys or j/k and press Enter to run.
After a run ends, Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a run
  Tab          - High scores
  Q            - Quit

Examples:
  runway menu
  runway menu --fps 30
  runway menu --db ./runs.db --sound`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Name runs are recorded under (default: current user)")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	player := playerName(flagPlayer)
	rt := runtimeConfig()

	for {
		res, err := tui.RunMenu(store, rt, cfg, player)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rt = res.Config

		if res.Quit {
			return
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		// Remember the pick so the menu reopens on it.
		config.ApplyPreset(&cfg, res.Difficulty)
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		back, err := playLocal(context.Background(), rt, sessionOptions{
			cfg:    cfg,
			preset: res.Difficulty,
			player: player,
			sound:  flagSound,
			store:  store,
			logger: logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !back {
			return
		}
	}
}
