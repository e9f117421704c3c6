package cmd

import (
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List built-in scenes and scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	files, err := scene.ListJSONScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Type", "Description"})
	for _, info := range append(scene.List(), files...) {
		name := info.Name
		if info.FilePath != "" {
			name = info.FilePath
		}
		table.Append([]string{name, info.Type, info.Description})
	}
	table.Render()

	return nil
}
