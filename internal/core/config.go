package core

// RuntimeConfig contains configuration passed to platforms at initialization.
type RuntimeConfig struct {
	ScreenW   int     // Screen width in characters (terminal) or pixels (window)
	ScreenH   int     // Screen height in characters (terminal) or pixels (window)
	TickRate  int     // Host frames per second (default 60)
	ViewportW float64 // Logical world viewport width in display pixels
	ViewportH float64 // Logical world viewport height in display pixels
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  60,
		ViewportW: 1920,
		ViewportH: 1080,
	}
}
