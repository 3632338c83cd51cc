package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/softtracer/go-pbr-pathtracer/log"
	"github.com/softtracer/go-pbr-pathtracer/pkg/integrator"
	"github.com/softtracer/go-pbr-pathtracer/pkg/renderer"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

var logger = log.New("pathtracer")

func main() {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "progressive physically-based path tracer"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "cornell",
			Usage: "scene to render (cornell)",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "output width in pixels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "output height in pixels",
		},
		cli.IntFlag{
			Name:  "frames",
			Value: 64,
			Usage: "number of frames to accumulate",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "number of render workers (0 = CPU count)",
		},
		cli.StringFlag{
			Name:  "out",
			Value: "render.png",
			Usage: "output file (.png or .webp)",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable per-frame debug logging",
		},
	}
	app.Action = render

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func render(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.Debug)
	}

	var sc *scene.Scene
	switch name := c.String("scene"); name {
	case "cornell":
		sc = scene.NewCornellScene()
	default:
		return fmt.Errorf("unknown scene %q", name)
	}

	width := c.Int("width")
	height := c.Int("height")

	config := renderer.DefaultConfig()
	config.Frames = c.Int("frames")
	config.NumWorkers = c.Int("workers")

	pr := renderer.NewProgressiveRenderer(sc, width, height, integrator.DefaultConfig(), config, nil)

	frameChan, errChan := pr.RenderProgressive(context.Background())

	var stats renderer.RenderStats
	var final *image.RGBA
	for result := range frameChan {
		stats.Add(result.Stats)
		final = result.Image
	}
	if err := <-errChan; err != nil {
		return err
	}

	out := c.String("out")
	if err := renderer.WriteImage(out, final); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Frames", "Resolution", "Total time", "Pixels/sec"})
	table.Append([]string{
		strconv.Itoa(stats.Frames),
		fmt.Sprintf("%dx%d", width, height),
		stats.TotalTime.String(),
		fmt.Sprintf("%.0f", stats.PixelsPerSecond()),
	})
	table.Render()

	logger.Infof("render saved as %s", out)
	return nil
}
