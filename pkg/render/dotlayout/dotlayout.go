// Package dotlayout refines a planned scene with Graphviz.
//
// The planner's seed layout fixes rows and packs each row at uniform
// spacing; dotlayout asks Graphviz dot for a crossing-reduced ordering and
// re-places each row in that order. Rows never move vertically and nodes
// never change rows, so the semantic structure of the plan survives the
// pass.
package dotlayout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Refiner implements render.Layouter using the Graphviz dot engine.
// The zero value uses the planner defaults for spacing.
type Refiner struct {
	LevelHeight float64
	NodeSpacing float64
}

// Layout runs dot over the scene and rewrites each row's x-coordinates to
// follow the crossing-reduced ordering. Returns an error if Graphviz fails;
// nodes Graphviz dropped keep their planned positions.
func (r Refiner) Layout(ctx context.Context, s *scene.Scene) error {
	if s.NodeCount() == 0 {
		return nil
	}

	dot := toDOT(s)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	xs := parseXPositions(buf.Bytes())
	r.applyOrdering(s, xs)
	return nil
}

// toDOT serializes the scene for dot. Each depth row becomes a rank=same
// subgraph so the solver cannot move nodes between rows.
func toDOT(s *scene.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=circle, width=0.6, fixedsize=true];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n\n")

	byDepth := make(map[int][]*scene.NodeElement)
	for _, n := range s.Nodes() {
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	for _, d := range depths {
		fmt.Fprintf(&buf, "  { rank=same;")
		for _, n := range byDepth[d] {
			fmt.Fprintf(&buf, " %q;", n.ID)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range s.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

var posRe = regexp.MustCompile(`(?m)^\s*"?([^"\[\]\s]+)"?\s*\[[^\]]*?pos="(-?[0-9.]+),(-?[0-9.]+)"`)

// parseXPositions extracts per-node x coordinates from attributed DOT
// output. Graphviz wraps long attribute lists with trailing backslashes;
// those are joined before matching.
func parseXPositions(out []byte) map[string]float64 {
	joined := strings.ReplaceAll(string(out), "\\\n", "")
	xs := make(map[string]float64)
	for _, m := range posRe.FindAllStringSubmatch(joined, -1) {
		x, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		xs[m[1]] = x
	}
	return xs
}

// applyOrdering re-places each depth row in the order Graphviz chose,
// keeping the planner's spacing and row centering.
func (r Refiner) applyOrdering(s *scene.Scene, xs map[string]float64) {
	nodeSpacing := r.NodeSpacing
	if nodeSpacing == 0 {
		nodeSpacing = layout.DefaultNodeSpacing
	}
	levelHeight := r.LevelHeight
	if levelHeight == 0 {
		levelHeight = layout.DefaultLevelHeight
	}

	byDepth := make(map[int][]*scene.NodeElement)
	for _, n := range s.Nodes() {
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}

	for depth, row := range byDepth {
		known := true
		for _, n := range row {
			if _, ok := xs[n.ID]; !ok {
				known = false
				break
			}
		}
		if !known {
			continue
		}

		sort.SliceStable(row, func(i, j int) bool {
			return xs[row[i].ID] < xs[row[j].ID]
		})

		rowWidth := float64(len(row)-1) * nodeSpacing
		startX := -rowWidth / 2
		y := float64(depth) * levelHeight
		for i, n := range row {
			n.InitialPos = &scene.Point{X: startX + float64(i)*nodeSpacing, Y: y}
		}
	}
}
