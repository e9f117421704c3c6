package cmd

import (
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/urfave/cli"
)

// NewApp builds the command tree
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes with a Monte Carlo path tracer"
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
			Usage: "render a scene to an image",
			Description: `
Render a built-in scene or a JSON scene file. Width, height and samples per
pixel default to the scene's recommended values.

The output format is chosen from the file extension (.ppm or .png); use "-"
to stream a PPM image to stdout. The image can optionally be published to
an S3 bucket.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name or path to a .json scene file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (default: scene recommendation)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (default: scene recommendation)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (default: scene recommendation)",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: integrator.DefaultMaxDepth,
					Usage: "maximum number of bounces per path",
				},
				cli.Float64Flag{
					Name:  "tmin",
					Value: integrator.DefaultTMin,
					Usage: "minimum hit distance for scattered rays",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed (default: scene seed)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.ppm",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "thumbnail",
					Usage: "also write a PNG thumbnail to this file",
				},
				cli.UintFlag{
					Name:  "thumbnail-width",
					Value: 160,
					Usage: "thumbnail width in pixels",
				},
				cli.StringFlag{
					Name:   "s3-bucket",
					Usage:  "upload the rendered image to this bucket",
					EnvVar: "PATHTRACER_S3_BUCKET",
				},
				cli.StringFlag{
					Name:   "s3-key",
					Usage:  "object key for the upload (default: output file name)",
					EnvVar: "PATHTRACER_S3_KEY",
				},
				cli.StringFlag{
					Name:   "s3-region",
					Value:  "us-east-1",
					Usage:  "bucket region",
					EnvVar: "PATHTRACER_S3_REGION",
				},
				cli.StringFlag{
					Name:   "s3-endpoint",
					Usage:  "custom endpoint for S3 compatible stores",
					EnvVar: "PATHTRACER_S3_ENDPOINT",
				},
				cli.StringFlag{
					Name:   "s3-access-key",
					Usage:  "static access key (default: AWS credential chain)",
					EnvVar: "PATHTRACER_S3_ACCESS_KEY",
				},
				cli.StringFlag{
					Name:   "s3-secret-key",
					Usage:  "static secret key",
					EnvVar: "PATHTRACER_S3_SECRET_KEY",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and JSON scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for .json scene files",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve render and inspect endpoints over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for .json scene files",
				},
			},
			Action: Serve,
		},
	}

	return app
}
