package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/prism-render/prism/log"
	"github.com/prism-render/prism/scene"
	"github.com/prism-render/prism/tracer"
)

var logger = log.New("renderer")

// Each tile stream gets its own seed derived from the base seed and the
// tile index so that renders are reproducible for a fixed seed while tiles
// stay statistically independent.
const tileSeedStride = 0x5deece66d

type tileJob struct {
	tile    tile
	attempt int
}

type tileResult struct {
	job  tileJob
	stat TileStat
	err  error
}

// The default renderer drives a pool of workers over a queue of tiles.
// Workers share the read-only scene and the frame image; all mutable
// per-tile state (accumulators, random stream) is owned by the worker
// processing the tile.
type defaultRenderer struct {
	sc      *scene.Scene
	options Options

	statsMu sync.Mutex
	stats   FrameStats
}

// Create a new tile-parallel renderer for a scene. Configuration errors
// (invalid options, degenerate camera basis) are reported here, before any
// pixel work begins.
func NewDefault(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Exposure == 0 {
		opts.Exposure = 1
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}

	if err := sc.Camera.Setup(float32(opts.FrameW) / float32(opts.FrameH)); err != nil {
		return nil, err
	}

	return &defaultRenderer{sc: sc, options: opts}, nil
}

func (r *defaultRenderer) Stats() FrameStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

func (r *defaultRenderer) Render(ctx context.Context) (*image.RGBA, error) {
	start := time.Now()

	r.statsMu.Lock()
	r.stats = FrameStats{}
	r.statsMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tiles := makeTiles(r.options.FrameW, r.options.FrameH, r.options.TileSize)
	img := image.NewRGBA(image.Rect(0, 0, int(r.options.FrameW), int(r.options.FrameH)))

	logger.Infof("rendering %dx%d frame: %d tiles, %d workers", r.options.FrameW, r.options.FrameH, len(tiles), r.options.NumWorkers)

	// Room for one retry per tile so neither side ever blocks forever.
	jobs := make(chan tileJob, 2*len(tiles))
	results := make(chan tileResult, 2*len(tiles))

	var wg sync.WaitGroup
	for i := 0; i < r.options.NumWorkers; i++ {
		wg.Add(1)
		go r.worker(ctx, i, img, jobs, results, &wg)
	}

	for _, t := range tiles {
		jobs <- tileJob{tile: t, attempt: 1}
	}

	pending := len(tiles)
	var renderErr error
	for pending > 0 && renderErr == nil {
		select {
		case <-ctx.Done():
			renderErr = ErrInterrupted
		case res := <-results:
			if res.err != nil {
				if res.job.attempt == 1 {
					logger.Warningf("retrying failed tile %d at (%d,%d): %v", res.job.tile.index, res.job.tile.x, res.job.tile.y, res.err)
					jobs <- tileJob{tile: res.job.tile, attempt: 2}
					continue
				}
				renderErr = fmt.Errorf("renderer: tile %d at (%d,%d) failed twice: %v", res.job.tile.index, res.job.tile.x, res.job.tile.y, res.err)
				continue
			}

			pending--
			r.statsMu.Lock()
			r.stats.Tiles = append(r.stats.Tiles, res.stat)
			r.statsMu.Unlock()
			if r.options.Progress != nil {
				r.options.Progress(res.stat)
			}
		}
	}

	// Stop workers from picking up any tiles still queued after an abort.
	cancel()
	close(jobs)
	wg.Wait()

	r.statsMu.Lock()
	r.stats.RenderTime = time.Since(start)
	r.statsMu.Unlock()

	if renderErr != nil {
		return nil, renderErr
	}
	return img, nil
}

func (r *defaultRenderer) worker(ctx context.Context, id int, img *image.RGBA, jobs <-chan tileJob, results chan<- tileResult, wg *sync.WaitGroup) {
	defer wg.Done()

	pt := tracer.NewPathTracer(int(r.options.NumBounces))
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			// Do not start new tiles after cancellation.
			select {
			case <-ctx.Done():
				return
			default:
			}

			stat, err := r.renderTile(id, job, pt, img)
			results <- tileResult{job: job, stat: stat, err: err}
		}
	}
}

// renderTile runs every pixel sample for one tile, depositing wavelength
// samples into the tile's private accumulator and resolving it into the
// frame once all samples are complete. Worker panics (numerical anomalies
// escalating, broken surface implementations) are recovered into tile
// errors so a bad tile can never corrupt another tile's state.
func (r *defaultRenderer) renderTile(worker int, job tileJob, pt *tracer.PathTracer, img *image.RGBA) (stat TileStat, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tile panicked: %v", p)
		}
	}()

	start := time.Now()
	opts := &r.options
	t := job.tile

	rng := rand.New(rand.NewSource(opts.Seed + int64(t.index+1)*tileSeedStride))
	acc := newTileAccumulator(t, int(opts.SpectrumBins))
	cam := r.sc.Camera

	var samples uint64
	frameW, frameH := float32(opts.FrameW), float32(opts.FrameH)
	bins := int(opts.SpectrumBins)

	for y := t.y; y < t.y+t.h; y++ {
		for x := t.x; x < t.x+t.w; x++ {
			for s := uint32(0); s < opts.SamplesPerPixel; s++ {
				lens := tracer.SampleDisk(rng)
				sx := (float32(x) + rng.Float32()) / frameW
				sy := (float32(y) + rng.Float32()) / frameH
				ray := cam.CastRay(sx, sy, lens[0], lens[1])

				for bin := 0; bin < bins; bin++ {
					for k := uint32(0); k < opts.SpectrumSamples; k++ {
						wavelength := tracer.SampleWavelength(rng, bin, bins)
						acc.add(x, y, bin, pt.Trace(r.sc, ray, wavelength, rng))
						samples++
					}
				}
			}
		}
	}

	acc.resolve(img, opts.Exposure)

	return TileStat{
		Index:      t.index,
		X:          t.x,
		Y:          t.y,
		W:          t.w,
		H:          t.h,
		Samples:    samples,
		Worker:     worker,
		Attempts:   job.attempt,
		RenderTime: time.Since(start),
	}, nil
}
