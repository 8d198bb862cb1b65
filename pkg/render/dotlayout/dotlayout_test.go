package dotlayout

import (
	"strings"
	"testing"

	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

func intp(v int) *int { return &v }

func refineScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(graph.Graph{
		Nodes: []graph.Node{
			{ID: "root", Type: graph.NodeTypeConcept, PrerequisiteDepth: intp(0)},
			{ID: "left", Type: graph.NodeTypeConcept, PrerequisiteDepth: intp(1)},
			{ID: "right", Type: graph.NodeTypeConcept, PrerequisiteDepth: intp(1)},
		},
		Edges: []graph.Edge{
			{Source: "root", Target: "left", Type: graph.EdgeRequires},
			{Source: "root", Target: "right", Type: graph.EdgeRequires},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT(t *testing.T) {
	s := refineScene(t)
	dot := toDOT(s)

	// One rank=same subgraph per occupied depth pins nodes to their rows.
	if got := strings.Count(dot, "rank=same"); got != 2 {
		t.Errorf("rank=same subgraphs = %d, want 2", got)
	}
	for _, want := range []string{`"root";`, `"left";`, `"right";`, `"root" -> "left";`, `"root" -> "right";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestParseXPositions(t *testing.T) {
	out := `digraph G {
	graph [bb="0,0,200,300"];
	node [label="\N"];
	"root"	[height=0.6,
		pos="104.5,270",
		width=0.6];
	"left"	[height=0.6,
		pos="-36,162",
		width=0.6];
	plain	[pos="61.25,54",
		width=0.6];
}`

	xs := parseXPositions([]byte(out))

	tests := []struct {
		id   string
		want float64
	}{
		{id: "root", want: 104.5},
		{id: "left", want: -36},
		{id: "plain", want: 61.25},
	}
	for _, tt := range tests {
		got, ok := xs[tt.id]
		if !ok {
			t.Errorf("node %s missing from parsed positions", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("x[%s] = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseXPositionsJoinsContinuations(t *testing.T) {
	// Graphviz wraps long attribute lists with a trailing backslash.
	out := "\"wrapped\"\t[label=\"something long\",\\\npos=\"42.5,100\"];\n"

	xs := parseXPositions([]byte(out))
	if got := xs["wrapped"]; got != 42.5 {
		t.Errorf("x[wrapped] = %v, want 42.5", got)
	}
}

func TestApplyOrderingReordersWithinRow(t *testing.T) {
	s := refineScene(t)
	layout.Planner{}.Plan(s)

	left, _ := s.Node("left")
	right, _ := s.Node("right")
	rowY := left.InitialPos.Y

	// Graphviz placed "right" to the left of "left".
	xs := map[string]float64{"root": 0, "right": -100, "left": 100}
	Refiner{}.applyOrdering(s, xs)

	if !(right.InitialPos.X < left.InitialPos.X) {
		t.Errorf("right.x = %v should be left of left.x = %v", right.InitialPos.X, left.InitialPos.X)
	}

	// Rows keep their y and the planner's spacing and centering.
	if left.InitialPos.Y != rowY || right.InitialPos.Y != rowY {
		t.Error("refinement must not move nodes between rows")
	}
	if got := left.InitialPos.X - right.InitialPos.X; got != layout.DefaultNodeSpacing {
		t.Errorf("row spacing = %v, want %v", got, layout.DefaultNodeSpacing)
	}
	if got := left.InitialPos.X + right.InitialPos.X; got != 0 {
		t.Errorf("row no longer centered, x sum = %v", got)
	}

	root, _ := s.Node("root")
	if root.InitialPos.X != 0 || root.InitialPos.Y != 0 {
		t.Errorf("single-node row moved to (%v, %v)", root.InitialPos.X, root.InitialPos.Y)
	}
}

func TestApplyOrderingSkipsUnknownRows(t *testing.T) {
	s := refineScene(t)
	layout.Planner{}.Plan(s)

	left, _ := s.Node("left")
	before := *left.InitialPos

	// The depth-1 row has an unknown node, so it must keep its plan.
	xs := map[string]float64{"root": 0, "right": -100}
	Refiner{}.applyOrdering(s, xs)

	if *left.InitialPos != before {
		t.Errorf("row with missing solver output moved: %v -> %v", before, *left.InitialPos)
	}
}
