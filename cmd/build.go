package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/hairbvh/arena"
	"github.com/achilleasa/hairbvh/bvh"
	"github.com/achilleasa/hairbvh/curve"
	"github.com/achilleasa/hairbvh/scene"
)

// BuildFlags enumerates the builder's configuration knobs as CLI flags,
// each defaulting to bvh.DefaultConfig()'s value.
var BuildFlags = []cli.Flag{
	cli.IntFlag{Name: "bins", Value: 16, Usage: "histogram width for binned splitters"},
	cli.IntFlag{Name: "n", Value: 4, Usage: "branching factor of inner nodes"},
	cli.IntFlag{Name: "min-leaf", Value: 2, Usage: "minimum leaf primitive count"},
	cli.IntFlag{Name: "max-leaf", Value: 4, Usage: "maximum leaf primitive count"},
	cli.IntFlag{Name: "max-depth", Value: 32, Usage: "recursion depth ceiling"},
	cli.Float64Flag{Name: "trav-cost-aligned", Value: 1.0, Usage: "SAH traversal weight for aligned nodes"},
	cli.Float64Flag{Name: "trav-cost-unaligned", Value: 1.3, Usage: "SAH traversal weight for unaligned nodes"},
	cli.Uint64Flag{Name: "seed", Value: 0, Usage: "seed for the oriented-bounds PRNG (0 picks a fixed default)"},
	cli.BoolFlag{Name: "disable-object-splits", Usage: "disable the binned object splitter"},
	cli.BoolFlag{Name: "disable-subdiv-splits", Usage: "disable the subdivision-object splitter"},
	cli.BoolFlag{Name: "disable-spatial-splits", Usage: "disable the spatial-center splitter"},
	cli.BoolFlag{Name: "disable-strand-splits", Usage: "disable the strand splitter"},
	cli.BoolFlag{Name: "disable-aligned-splits", Usage: "disable aligned-frame candidates"},
	cli.BoolFlag{Name: "disable-unaligned-splits", Usage: "disable unaligned-frame candidates"},
	cli.BoolFlag{Name: "disable-pre-subdivision", Usage: "skip the pre-subdivision pass"},
}

func configFromFlags(ctx *cli.Context) bvh.Config {
	cfg := bvh.DefaultConfig()
	cfg.Bins = ctx.Int("bins")
	cfg.N = ctx.Int("n")
	cfg.MinLeafSize = ctx.Int("min-leaf")
	cfg.MaxLeafBlocks = ctx.Int("max-leaf")
	cfg.MaxBuildDepth = ctx.Int("max-depth")
	cfg.TravCostAligned = float32(ctx.Float64("trav-cost-aligned"))
	cfg.TravCostUnaligned = float32(ctx.Float64("trav-cost-unaligned"))
	cfg.EnableObjectSplits = !ctx.Bool("disable-object-splits")
	cfg.EnableSubdivSplits = !ctx.Bool("disable-subdiv-splits")
	cfg.EnableSpatialSplits = !ctx.Bool("disable-spatial-splits")
	cfg.EnableStrandSplits = !ctx.Bool("disable-strand-splits")
	cfg.EnableAlignedSplits = !ctx.Bool("disable-aligned-splits")
	cfg.EnableUnalignedSplits = !ctx.Bool("disable-unaligned-splits")
	cfg.EnablePreSubdivision = !ctx.Bool("disable-pre-subdivision")
	return cfg
}

// BuildScene loads a curve-scene text file, runs the builder with
// the knobs given as flags, and prints the stats table plus a coverage
// summary. A demonstration harness, not a rendering pipeline.
func BuildScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return fmt.Errorf("build: expected a curve scene file argument")
	}
	sceneFile := ctx.Args().Get(0)

	sc, err := scene.LoadCurveFile(sceneFile)
	if err != nil {
		logger.Errorf("build: %s", err)
		os.Exit(1)
	}

	cfg := configFromFlags(ctx)
	buf, _ := scene.Ingest(sc, 3)
	ingestedCount := buf.Len()

	if cfg.EnablePreSubdivision {
		curve.PreSubdivide(buf)
	}
	preSubdividedCount := buf.Len()

	bctx := bvh.NewContext(cfg, ctx.Uint64("seed"))
	ar := arena.New()
	root := bvh.Build(bctx, buf, ar, 0)

	fmt.Println(bctx.Stats.Table())
	fmt.Printf(
		"root: 0x%x, curves ingested: %d, curves after pre-subdivision: %d\n",
		uint64(root), ingestedCount, preSubdividedCount,
	)
	return nil
}
