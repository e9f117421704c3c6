package main

import (
	"os"

	"github.com/df07/go-weekend-pathtracer/cmd"
	"github.com/df07/go-weekend-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func run(args []string) error {
	cmd.LoadEnv()
	return cmd.NewApp().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
