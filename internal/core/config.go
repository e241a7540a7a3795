package core

// RuntimeConfig is passed to a game when it is reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns an 80x24, 60 FPS runtime.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the platform-visible status of a game.
type GameState struct {
	Score      int
	Speed      float64
	Difficulty string
	GameOver   bool
	Paused     bool
	Muted      bool
	Volume     float64
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Finished is set on the frame the run ended.
	Finished bool
}
