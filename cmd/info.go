package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/prism-render/prism/scene/reader"
	"github.com/urfave/cli"
)

// Print a summary of a scene description without rendering it.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, opts, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Material", "Type", "IOR", "Dispersion", "Fresnel blend"})
	for _, mat := range sc.Materials {
		table.Append([]string{
			mat.Name,
			mat.Type.String(),
			fmt.Sprintf("%.3f", mat.IOR),
			fmt.Sprintf("%.3f", mat.Dispersion),
			fmt.Sprintf("%.2f", mat.FresnelBlend),
		})
	}
	table.Render()
	logger.Noticef("scene materials\n%s", buf.String())

	logger.Noticef("surfaces: %d", len(sc.Surfaces))
	logger.Noticef("camera: position %v, look-at %v, fov %.1f, aperture %.3f",
		sc.Camera.Position, sc.Camera.LookAt, sc.Camera.FOV, sc.Camera.Aperture)
	logger.Noticef("render settings: %dx%d, %d spp, %d bins x %d draws, %d bounces, tile size %d",
		opts.FrameW, opts.FrameH, opts.SamplesPerPixel, opts.SpectrumBins,
		opts.SpectrumSamples, opts.NumBounces, opts.TileSize)

	return nil
}
