package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/prism-render/prism/renderer"
	"github.com/prism-render/prism/scene/reader"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, opts, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	applyFlagOverrides(ctx, &opts)

	completed := 0
	opts.Progress = func(stat renderer.TileStat) {
		completed++
		logger.Infof("tile %d done (%d total, %d samples in %s)", stat.Index, completed, stat.Samples, stat.RenderTime)
	}

	r, err := renderer.NewDefault(sc, opts)
	if err != nil {
		return err
	}

	// Ctrl-C stops dispatching tiles; in-flight tiles finish first.
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	img, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	out, err := os.Create(ctx.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()
	if err = png.Encode(out, img); err != nil {
		return fmt.Errorf("could not write frame: %v", err)
	}

	displayFrameStats(r.Stats())
	logger.Noticef("wrote frame to %s", ctx.String("out"))

	return nil
}

func applyFlagOverrides(ctx *cli.Context, opts *renderer.Options) {
	if ctx.IsSet("width") {
		opts.FrameW = uint32(ctx.Int("width"))
	}
	if ctx.IsSet("height") {
		opts.FrameH = uint32(ctx.Int("height"))
	}
	if ctx.IsSet("spp") {
		opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	}
	if ctx.IsSet("spectrum-samples") {
		opts.SpectrumSamples = uint32(ctx.Int("spectrum-samples"))
	}
	if ctx.IsSet("spectrum-bins") {
		opts.SpectrumBins = uint32(ctx.Int("spectrum-bins"))
	}
	if ctx.IsSet("tile-size") {
		opts.TileSize = uint32(ctx.Int("tile-size"))
	}
	if ctx.IsSet("num-bounces") {
		opts.NumBounces = uint32(ctx.Int("num-bounces"))
	}
	if ctx.IsSet("exposure") {
		opts.Exposure = float32(ctx.Float64("exposure"))
	}
	if ctx.IsSet("workers") {
		opts.NumWorkers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		opts.Seed = ctx.Int64("seed")
	}
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tile", "Bounds", "Worker", "Attempts", "Samples", "Render time"})
	for _, stat := range stats.Tiles {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Index),
			fmt.Sprintf("%dx%d+%d+%d", stat.W, stat.H, stat.X, stat.Y),
			fmt.Sprintf("%d", stat.Worker),
			fmt.Sprintf("%d", stat.Attempts),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
