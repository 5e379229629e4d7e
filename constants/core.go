package constants

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// BugMoveInterval is the wall-clock period between two bug steps
	BugMoveInterval = 1000 * time.Millisecond

	// RunnerTickInterval is how often the runner advances the scheduler
	RunnerTickInterval = 8 * time.Millisecond

	// MaxIntervalLag is how many missed periods an interval may catch up before it is re-phased
	MaxIntervalLag = 2
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255

	// CommandQueueSize is the buffer for input commands waiting on the runner
	CommandQueueSize = 64
)

// Grid Limits
const (
	// MaxGridWidth bounds level files, the largest built-in level is 16 wide
	MaxGridWidth = 64

	// MaxGridHeight bounds level files, the largest built-in level is 15 tall
	MaxGridHeight = 64
)
