// Package highlight applies transient visual states over the settled graph.
//
// Highlights and dims are class-based style overrides layered on top of the
// type-based styling; they are non-persistent and independent of the reveal
// pipeline. The highlighter assumes no pipeline run is concurrently altering
// the scene; callers gate highlight actions on pipeline completion.
package highlight

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/conceptflow/conceptflow/pkg/render"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Style classes applied by the highlighter. Stylesheet generators must emit
// the rules for these classes after all type-based rules so they are never
// shadowed (see viz.Stylesheet).
const (
	ClassHighlighted = "highlighted"
	ClassDimmed      = "dimmed"
	ClassHover       = "hover-connected"
)

// DefaultStepDelay is the pause between consecutive path-highlight steps.
const DefaultStepDelay = 150 * time.Millisecond

// Options configures a Highlighter.
type Options struct {
	StepDelay time.Duration // delay between path steps; 0 means DefaultStepDelay
	Logger    *log.Logger
}

// PathOptions configures one HighlightPath call.
type PathOptions struct {
	// DimOthers dims every element before the walk starts, so the path
	// stands out against the rest of the graph.
	DimOthers bool
}

// DefaultPathOptions dims non-path elements.
func DefaultPathOptions() PathOptions {
	return PathOptions{DimOthers: true}
}

// Highlighter toggles highlight/dim classes on a settled scene through the
// rendering engine.
type Highlighter struct {
	scn  *scene.Scene
	eng  render.Engine
	opts Options
}

// New creates a Highlighter over the scene and engine.
func New(s *scene.Scene, eng render.Engine, opts Options) *Highlighter {
	if opts.StepDelay == 0 {
		opts.StepDelay = DefaultStepDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Highlighter{scn: s, eng: eng, opts: opts}
}

// HighlightPath walks an ordered sequence of node ids, marking each node and
// the edge to the next resolved id highlighted, one step at a time with a
// fixed delay between steps. Ids not present in the graph are skipped
// without error; the walk connects the present ids around them. With
// opts.DimOthers, everything else is dimmed first; touched elements are
// undimmed as the walk reaches them.
func (h *Highlighter) HighlightPath(ctx context.Context, ids []string, opts PathOptions) error {
	if opts.DimOthers {
		h.dimAll()
	}

	present := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := h.scn.Node(id); !ok {
			h.opts.Logger.Debug("highlight path: unknown node skipped", "id", id)
			continue
		}
		present = append(present, id)
	}

	for i, id := range present {
		h.eng.RemoveClass(id, ClassDimmed)
		h.eng.AddClass(id, ClassHighlighted)

		if i+1 == len(present) {
			break
		}
		for _, e := range h.scn.EdgesBetween(id, present[i+1]) {
			h.eng.RemoveClass(e.ID, ClassDimmed)
			h.eng.AddClass(e.ID, ClassHighlighted)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(h.opts.StepDelay):
		}
	}
	return nil
}

// ClearHighlights removes every highlight, dim, and hover marking.
// Idempotent: clearing an unmarked scene is a no-op.
func (h *Highlighter) ClearHighlights() {
	for _, n := range h.scn.Nodes() {
		h.eng.RemoveClass(n.ID, ClassHighlighted)
		h.eng.RemoveClass(n.ID, ClassDimmed)
		h.eng.RemoveClass(n.ID, ClassHover)
	}
	for _, e := range h.scn.Edges() {
		h.eng.RemoveClass(e.ID, ClassHighlighted)
		h.eng.RemoveClass(e.ID, ClassDimmed)
		h.eng.RemoveClass(e.ID, ClassHover)
	}
}

// HoverConnect marks a node, its incident edges, and their endpoints with
// the hover-connected state. Unknown ids are ignored.
func (h *Highlighter) HoverConnect(id string) {
	if _, ok := h.scn.Node(id); !ok {
		return
	}
	h.eng.AddClass(id, ClassHover)
	for _, e := range h.scn.IncidentEdges(id) {
		h.eng.AddClass(e.ID, ClassHover)
		h.eng.AddClass(e.Source, ClassHover)
		h.eng.AddClass(e.Target, ClassHover)
	}
}

// Unhover removes the hover-connected state applied by HoverConnect.
func (h *Highlighter) Unhover(id string) {
	if _, ok := h.scn.Node(id); !ok {
		return
	}
	h.eng.RemoveClass(id, ClassHover)
	for _, e := range h.scn.IncidentEdges(id) {
		h.eng.RemoveClass(e.ID, ClassHover)
		h.eng.RemoveClass(e.Source, ClassHover)
		h.eng.RemoveClass(e.Target, ClassHover)
	}
}

func (h *Highlighter) dimAll() {
	for _, n := range h.scn.Nodes() {
		h.eng.AddClass(n.ID, ClassDimmed)
	}
	for _, e := range h.scn.Edges() {
		h.eng.AddClass(e.ID, ClassDimmed)
	}
}
