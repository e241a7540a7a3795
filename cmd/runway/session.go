package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/runway/internal/audio"
	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/core"
	"github.com/vovakirdan/runway/internal/games/runway"
	"github.com/vovakirdan/runway/internal/games/runway/sim"
	"github.com/vovakirdan/runway/internal/platform/tui"
	"github.com/vovakirdan/runway/internal/spectate"
	"github.com/vovakirdan/runway/internal/storage"
)

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file they log nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "runway",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// loadConfig loads the runway config and applies a difficulty override.
func loadConfig(difficulty string) (config.RunwayConfig, error) {
	cfg, err := config.LoadRunway(flagConfig)
	if err != nil {
		return cfg, err
	}
	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the runs database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// playerName picks the name runs are recorded under.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}

// sessionOptions are the collaborators of a local run.
type sessionOptions struct {
	cfg      config.RunwayConfig
	preset   config.DifficultyPreset
	player   string
	sound    bool
	spectate string // Listen address; empty disables spectating
	store    *storage.Store
	logger   *log.Logger
}

// playLocal runs one game in this terminal with recording, sound and
// spectating wired as requested. It reports whether the user asked to go
// back to the menu.
func playLocal(ctx context.Context, rt core.RuntimeConfig, opts sessionOptions) (bool, error) {
	var sinks []sim.EventSink
	if opts.store != nil {
		sinks = append(sinks, storage.NewRecorder(opts.store, opts.player, opts.logger))
	}

	var bridge sim.AudioBridge
	if opts.sound {
		b := audio.NewBridge(opts.cfg.Audio.Volume, opts.cfg.Audio.Muted, opts.logger)
		if err := b.Open(); err != nil {
			opts.logger.Warn("sound disabled", "err", err)
		} else {
			defer b.Close()
			bridge = b
			sinks = append(sinks, b)
		}
	}

	var hub *spectate.Hub
	if opts.spectate != "" {
		hub = spectate.NewHub(opts.logger)
		srv, err := spectate.Listen(opts.spectate, hub)
		if err != nil {
			return false, fmt.Errorf("cannot start spectator feed: %w", err)
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
				opts.logger.Error("spectator feed stopped", "err", err)
			}
		}()
		opts.logger.Info("spectator feed listening", "addr", "ws://"+srv.Addr()+"/ws")
		sinks = append(sinks, hub)
	}

	game, err := runway.New(runway.Options{
		Config:     opts.cfg,
		Difficulty: opts.preset,
		Seed:       rt.Seed,
		Logger:     opts.logger,
		Sinks:      sinks,
		Audio:      bridge,
	})
	if err != nil {
		return false, err
	}
	defer game.Close()

	var hook tui.FrameHook
	if hub != nil {
		hook = func() {
			if err := hub.Publish(spectate.Snapshot(game.Controller())); err != nil {
				opts.logger.Warn("spectator frame dropped", "err", err)
			}
		}
	}

	opts.logger.Info("run starting", "player", opts.player, "difficulty", opts.preset)
	return tui.Run(game, rt, hook)
}
