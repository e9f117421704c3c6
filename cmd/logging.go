package cmd

import (
	"github.com/df07/go-weekend-pathtracer/pkg/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// LoadEnv reads environment files (".env" when none are given) so flags
// backed by environment variables can pick them up. Missing files are not
// an error.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debugf("no environment file loaded: %v", err)
	}
}
