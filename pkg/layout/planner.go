// Package layout computes the deterministic seed arrangement for a scene.
//
// The planner places nodes on a grid derived purely from semantic metadata:
// prerequisite depth selects the row, cluster id orders nodes within the
// row. No physics simulation is involved, so planning the same scene twice
// yields identical coordinates. A later refinement pass (pkg/render/dotlayout)
// de-clutters edge routing without relocating nodes across rows.
package layout

import (
	"cmp"
	"slices"
	"sort"

	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Default spacing between rows and between nodes within a row.
const (
	DefaultLevelHeight = 150.0
	DefaultNodeSpacing = 120.0
)

// Planner computes positions from depth and cluster metadata.
// The zero value uses the default spacing.
type Planner struct {
	LevelHeight float64 // vertical distance between consecutive depth rows
	NodeSpacing float64 // horizontal distance between nodes in a row
}

// Plan describes the computed arrangement.
type Plan struct {
	// Depths lists the occupied prerequisite depths in ascending order.
	// Depths with no nodes are simply absent.
	Depths []int

	// Rows maps each occupied depth to its node ids in left-to-right order.
	Rows map[int][]string
}

// Plan computes a position for every node in the scene and caches it on the
// element as InitialPos.
//
// Rows are spaced LevelHeight apart with depth 0 at y = 0. Within a row,
// nodes are sorted by cluster id ascending (stable, so ties keep input
// order), laid out left-to-right at NodeSpacing, and the row is centered
// around x = 0. A single-node row centers that node at x = 0 exactly.
func (p Planner) Plan(s *scene.Scene) Plan {
	levelHeight := p.LevelHeight
	if levelHeight == 0 {
		levelHeight = DefaultLevelHeight
	}
	nodeSpacing := p.NodeSpacing
	if nodeSpacing == 0 {
		nodeSpacing = DefaultNodeSpacing
	}

	byDepth := make(map[int][]*scene.NodeElement)
	for _, n := range s.Nodes() {
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}

	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	rows := make(map[int][]string, len(byDepth))
	for _, depth := range depths {
		row := byDepth[depth]
		slices.SortStableFunc(row, func(a, b *scene.NodeElement) int {
			return cmp.Compare(a.ClusterID, b.ClusterID)
		})

		rowWidth := float64(len(row)-1) * nodeSpacing
		startX := -rowWidth / 2
		y := float64(depth) * levelHeight

		ids := make([]string, len(row))
		for i, n := range row {
			n.InitialPos = &scene.Point{X: startX + float64(i)*nodeSpacing, Y: y}
			ids[i] = n.ID
		}
		rows[depth] = ids
	}

	return Plan{Depths: depths, Rows: rows}
}
