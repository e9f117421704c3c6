package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/output"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := scene.Create(ctx.String("scene"))
	if err != nil {
		return err
	}

	sampling := samplingOptions(ctx, sc.SamplingConfig)
	integ := integratorOptions(ctx, sc.Integrator)

	camera, err := sc.NewCamera(sampling.Width, sampling.Height)
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(camera, sc.World, integrator.NewPathTracingIntegrator(integ), sampling)
	if err != nil {
		return err
	}

	logger.Infof("scene %q: %d spheres, max depth %d", sc.Name, sc.GetPrimitiveCount(), integ.MaxDepth)

	// Ctrl-C stops the render between scanlines
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := rt.RenderPass(runCtx)
	if err != nil {
		return err
	}

	displayRenderStats(stats)

	return writeOutputs(runCtx, ctx, frame)
}

// writeOutputs stores the image, the thumbnail and the S3 copy concurrently.
// The frame is read-only at this point.
func writeOutputs(runCtx context.Context, ctx *cli.Context, frame *renderer.Frame) error {
	out := ctx.String("out")
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		return output.WriteFile(out, frame)
	})

	if thumbPath := ctx.String("thumbnail"); thumbPath != "" {
		g.Go(func() error {
			return output.WriteThumbnail(thumbPath, output.ToRGBA(frame), ctx.Uint("thumbnail-width"))
		})
	}

	if ctx.String("s3-bucket") != "" {
		g.Go(func() error {
			return publishFrame(gctx, ctx, frame, out)
		})
	}

	return g.Wait()
}

// samplingOptions applies explicit flags on top of the scene recommendation
func samplingOptions(ctx *cli.Context, sampling renderer.SamplingConfig) renderer.SamplingConfig {
	if ctx.IsSet("width") {
		sampling.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		sampling.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		sampling.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("seed") {
		sampling.Seed = ctx.Int64("seed")
	}
	return sampling
}

// integratorOptions applies the bounce limit and t_min flags. Scene files
// may carry their own values, which only an explicit flag overrides.
func integratorOptions(ctx *cli.Context, config integrator.Config) integrator.Config {
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("tmin") {
		config.TMin = ctx.Float64("tmin")
	}
	return config
}

// publishFrame uploads the encoded frame to S3
func publishFrame(runCtx context.Context, ctx *cli.Context, frame *renderer.Frame, out string) error {
	format := output.FormatPPM
	if out != "-" {
		var err error
		if format, err = output.FormatFromPath(out); err != nil {
			return err
		}
	}

	key := ctx.String("s3-key")
	if key == "" {
		key = filepath.Base(out)
		if out == "-" {
			key = "render.ppm"
		}
	}

	uploader, err := output.NewS3Uploader(output.S3Config{
		Bucket:    ctx.String("s3-bucket"),
		Region:    ctx.String("s3-region"),
		Endpoint:  ctx.String("s3-endpoint"),
		AccessKey: ctx.String("s3-access-key"),
		SecretKey: ctx.String("s3-secret-key"),
	})
	if err != nil {
		return err
	}

	data, err := output.EncodeBytes(frame, format)
	if err != nil {
		return err
	}
	return uploader.Upload(runCtx, key, data, format.ContentType())
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Samples/pixel", "Fastest row", "Slowest row", "Samples/sec"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		stats.FastestRow.String(),
		stats.SlowestRow.String(),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
