package core

// RuntimeConfig contains configuration passed to a game at start.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	Seed       int64 // RNG seed for secrets; 0 means seed from the clock
	StartLevel int   // First level to play (1-based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		Seed:       0,
		StartLevel: 1,
	}
}
