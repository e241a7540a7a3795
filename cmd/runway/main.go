// runway is a pseudo-3D lane runner for the terminal.
//
// Usage:
//
//	runway play              - Start a run at the configured difficulty
//	runway menu              - Pick a difficulty and browse scores interactively
//	runway scores [mode]     - Show high scores
//	runway serve             - Start SSH server for remote play
//	runway config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.runway/runs.db)
//	--config <path>     - Load a custom YAML config
//	--log-file <path>   - Write logs to a file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Runway - dodge and collect down a perspective runway",
	Long: `Runway is a lane runner drawn in pseudo-3D: obstacles and coins rush
toward you down a runway that narrows to the horizon. Change lanes to
collect coins, jump over obstacles, and survive as the speed climbs.

Available commands:
  play     - Start a run directly
  menu     - Interactive difficulty picker and scoreboard
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  runway play
  runway play --difficulty hard --sound
  runway play --spectate :8080
  runway menu
  runway serve --ssh :2222
  runway scores hard`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runway/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runway config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
