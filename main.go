package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/hairbvh/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "hairbvh"
	app.Usage = "build a 4-wide BVH over hair/fur curve geometry"
	app.Version = "0.0.1"
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
			Name:  "build",
			Usage: "build a BVH from a curve scene file",
			Description: `
Load a curve-scene text file, build a 4-wide BVH over its curves, and
print build statistics and a coverage summary. Demonstration harness, not
a rendering pipeline.`,
			ArgsUsage: "scene_file.curves",
			Flags:     cmd.BuildFlags,
			Action:    cmd.BuildScene,
		},
	}

	app.Run(os.Args)
}
