package bvh

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/achilleasa/hairbvh/log"
	"github.com/achilleasa/hairbvh/rng"
)

// Stats counts how often each splitter kind wins, threaded through a
// Context rather than living at package scope.
type Stats struct {
	AlignedObjectSplits    int
	AlignedSpatialSplits   int
	AlignedSubdivSplits    int
	UnalignedObjectSplits  int
	UnalignedSpatialSplits int
	UnalignedSubdivSplits  int
	StrandSplits           int
	FallbackSplits         int

	AlignedNodes   int
	UnalignedNodes int
	Leafs          int
	MaxDepth       int
	LeafOverflows  int
}

func (s *Stats) record(kind SplitKind) {
	switch kind {
	case SplitAlignedObject:
		s.AlignedObjectSplits++
	case SplitAlignedSpatial:
		s.AlignedSpatialSplits++
	case SplitAlignedSubdiv:
		s.AlignedSubdivSplits++
	case SplitUnalignedObject:
		s.UnalignedObjectSplits++
	case SplitUnalignedSpatial:
		s.UnalignedSpatialSplits++
	case SplitUnalignedSubdiv:
		s.UnalignedSubdivSplits++
	case SplitStrand:
		s.StrandSplits++
	case SplitFallback:
		s.FallbackSplits++
	}
}

// Table renders a build-statistics summary as an aligned text table.
func (s *Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Splitter", "Count"})
	table.Append([]string{"Aligned object", fmt.Sprint(s.AlignedObjectSplits)})
	table.Append([]string{"Aligned spatial", fmt.Sprint(s.AlignedSpatialSplits)})
	table.Append([]string{"Aligned subdiv", fmt.Sprint(s.AlignedSubdivSplits)})
	table.Append([]string{"Unaligned object", fmt.Sprint(s.UnalignedObjectSplits)})
	table.Append([]string{"Unaligned spatial", fmt.Sprint(s.UnalignedSpatialSplits)})
	table.Append([]string{"Unaligned subdiv", fmt.Sprint(s.UnalignedSubdivSplits)})
	table.Append([]string{"Strand", fmt.Sprint(s.StrandSplits)})
	table.Append([]string{"Fallback (median)", fmt.Sprint(s.FallbackSplits)})
	table.Append([]string{" ", " "})
	table.Append([]string{"Aligned nodes", fmt.Sprint(s.AlignedNodes)})
	table.Append([]string{"Unaligned nodes", fmt.Sprint(s.UnalignedNodes)})
	table.Append([]string{"Leafs", fmt.Sprint(s.Leafs)})
	table.Append([]string{"Leaf overflows", fmt.Sprint(s.LeafOverflows)})
	table.SetFooter([]string{"Max depth", fmt.Sprint(s.MaxDepth)})
	table.Render()
	return buf.String()
}

// Context threads everything a build needs rather than reaching for
// package-level state: the logger, the configuration, the deterministic
// PRNG used by the oriented-bounds search, and the running statistics.
type Context struct {
	Logger log.Logger
	Config Config
	Rand   *rng.Source
	Stats  Stats
}

// NewContext builds a Context with the given configuration, seeding the
// PRNG explicitly (never from a process-global source) for reproducible
// builds.
func NewContext(cfg Config, seed uint64) *Context {
	return &Context{
		Logger: log.New("bvh"),
		Config: cfg,
		Rand:   rng.New(seed),
	}
}
