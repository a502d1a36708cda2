package renderer

import "fmt"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Edge length of a scheduling tile in pixels. Edge tiles are truncated
	// at the frame bounds.
	TileSize uint32

	// Number of full path samples per pixel.
	SamplesPerPixel uint32

	// Stratified wavelength draws per spectral bin for every pixel sample.
	SpectrumSamples uint32

	// Number of spectral accumulation bins per pixel.
	SpectrumBins uint32

	// Maximum number of scatter events per path.
	NumBounces uint32

	// Exposure multiplier applied before the sRGB transfer. Zero defaults
	// to 1.
	Exposure float32

	// Worker pool size. Zero defaults to the number of CPUs.
	NumWorkers int

	// Base seed for the per-tile random streams. Renders with the same
	// seed and options are bit-reproducible.
	Seed int64

	// Optional tile completion callback for progress reporting. Invoked
	// from the goroutine that called Render; may be nil.
	Progress func(TileStat)
}

// Validate option values. Invalid options are configuration errors and
// abort before rendering starts.
func (o *Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return fmt.Errorf("renderer: frame dimensions %dx%d are invalid", o.FrameW, o.FrameH)
	}
	if o.TileSize == 0 {
		return fmt.Errorf("renderer: tile size must be non-zero")
	}
	if o.SamplesPerPixel == 0 {
		return fmt.Errorf("renderer: samples per pixel must be non-zero")
	}
	if o.SpectrumSamples == 0 {
		return fmt.Errorf("renderer: spectrum samples must be non-zero")
	}
	if o.SpectrumBins == 0 {
		return fmt.Errorf("renderer: spectrum bins must be non-zero")
	}
	if o.Exposure < 0 {
		return fmt.Errorf("renderer: exposure must be non-negative")
	}
	return nil
}
