package reveal

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Default animation timings and layout spacing.
const (
	// DefaultRootFade is the fade-in duration for depth-0 nodes. Shorter
	// than DefaultNodeFade to emphasize entry points.
	DefaultRootFade = 300 * time.Millisecond

	// DefaultNodeFade is the fade-in duration for nodes below depth 0.
	DefaultNodeFade = 600 * time.Millisecond

	// DefaultEdgeFade is the fade-in duration for edges.
	DefaultEdgeFade = 800 * time.Millisecond

	// DefaultEdgeDelay is the pause between the last node settling and the
	// edge reveal starting.
	DefaultEdgeDelay = 200 * time.Millisecond

	// DefaultSeed seeds the per-depth jitter shuffle for reproducibility.
	DefaultSeed = uint64(42)
)

// Options configures a reveal pipeline run.
type Options struct {
	// Planner spacing. Zero values use the planner defaults.
	LevelHeight float64
	NodeSpacing float64

	// Stage timings. Zero values use the defaults above.
	RootFade  time.Duration
	NodeFade  time.Duration
	EdgeFade  time.Duration
	EdgeDelay time.Duration

	// Jitter randomizes the order in which fade-ins are issued within a
	// single depth. This is deliberate cosmetic variation and the one
	// intentionally non-deterministic part of the pipeline; leave it off
	// for fully reproducible runs. The shuffle is seeded so a given Seed
	// reproduces the same jitter.
	Jitter bool
	Seed   uint64

	// SkipRefine disables the final refinement-layout stage.
	SkipRefine bool

	// Logger receives stage progress and failure logs. Defaults to a
	// discard logger.
	Logger *log.Logger
}

// setDefaults fills zero-valued fields. Idempotent.
func (o *Options) setDefaults() {
	if o.RootFade == 0 {
		o.RootFade = DefaultRootFade
	}
	if o.NodeFade == 0 {
		o.NodeFade = DefaultNodeFade
	}
	if o.EdgeFade == 0 {
		o.EdgeFade = DefaultEdgeFade
	}
	if o.EdgeDelay == 0 {
		o.EdgeDelay = DefaultEdgeDelay
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
