package cmd

import (
	"github.com/df07/go-weekend-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the HTTP render server
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)
	return server.NewServer(ctx.Int("port"), ctx.String("dir")).Start()
}
