package renderer

import (
	"context"
	"image"
)

type Renderer interface {
	// Render a frame. The context provides cooperative cancellation: tiles
	// already in flight are completed but no further tiles are dispatched.
	Render(ctx context.Context) (*image.RGBA, error)

	// Get render statistics for the last frame.
	Stats() FrameStats
}
