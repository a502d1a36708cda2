package main

import (
	"os"

	"github.com/prism-render/prism/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "render scenes using spectral path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a png file",
			Description: `
Load a scene description, trace pixel_samples spectral light paths per pixel
across a pool of tile workers and write the resulting frame as a png image.

Renderer settings come from the scene file's renderer block; any flag set on
the command line overrides the corresponding setting.`,
			ArgsUsage: "scene_file.json",
			Action:    cmd.RenderFrame,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "path samples per pixel",
				},
				cli.IntFlag{
					Name:  "spectrum-samples",
					Usage: "wavelength draws per spectral bin per pixel sample",
				},
				cli.IntFlag{
					Name:  "spectrum-bins",
					Usage: "spectral accumulation bins per pixel",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Usage: "max scatter events per path",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Usage: "exposure multiplier for tonemapping",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = all cpus)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base seed for reproducible renders",
				},
				cli.StringFlag{
					Name:  "out",
					Value: "frame.png",
					Usage: "image output path",
				},
			},
		},
		{
			Name:      "info",
			Usage:     "print a summary of a scene description",
			ArgsUsage: "scene_file.json",
			Action:    cmd.SceneInfo,
		},
	}

	app.Run(os.Args)
}
