package renderer

import "time"

type TileStat struct {
	// Tile index within the frame.
	Index int

	// Tile bounds in pixels.
	X, Y, W, H uint32

	// Total number of wavelength samples traced for this tile.
	Samples uint64

	// The worker that processed this tile.
	Worker int

	// Number of attempts; greater than 1 when the tile was retried.
	Attempts int

	// Render time for this tile.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tile stats, in completion order.
	Tiles []TileStat

	// Total render time for the entire frame.
	RenderTime time.Duration
}
