package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func exportScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(graph.Graph{
		Nodes: []graph.Node{
			{ID: "root", Type: graph.NodeTypeConcept, Label: "Root", Difficulty: intp(1), Pagerank: floatp(0.2), PrerequisiteDepth: intp(0)},
			{ID: "leaf", Type: graph.NodeTypeChunk, PrerequisiteDepth: intp(1)},
		},
		Edges: []graph.Edge{
			{Source: "root", Target: "leaf", Type: graph.EdgeRequires, Weight: floatp(0.7)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFromScene(t *testing.T) {
	s := exportScene(t)
	enc := encode.New(encode.DefaultBounds, nil)

	el := FromScene(s, enc)

	if len(el.Nodes) != 2 || len(el.Edges) != 1 {
		t.Fatalf("elements = %d nodes, %d edges, want 2/1", len(el.Nodes), len(el.Edges))
	}

	root := el.Nodes[0].Data
	if root.ID != "root" || root.Label != "Root" || root.FullLabel != "Root" {
		t.Errorf("root data = %+v, want id/label carried over", root)
	}
	if root.Size != enc.NodeSize(0.2) {
		t.Errorf("root size = %v, want encoder output %v", root.Size, enc.NodeSize(0.2))
	}
	if root.Opacity != enc.NodeOpacity(1) {
		t.Errorf("root opacity = %v, want encoder output %v", root.Opacity, enc.NodeOpacity(1))
	}
	if root.Color != encode.NodeColor(graph.NodeTypeConcept) || root.Shape != "ellipse" {
		t.Errorf("root encoding = %s/%s, want concept color and shape", root.Color, root.Shape)
	}

	// Unplanned scenes export without positions.
	if el.Nodes[0].Position != nil {
		t.Error("unplanned node should have no preset position")
	}

	e := el.Edges[0].Data
	if e.Source != "root" || e.Target != "leaf" || e.Weight != 0.7 {
		t.Errorf("edge data = %+v, want endpoints and weight carried over", e)
	}
	if e.Opacity != enc.EdgeOpacity(graph.EdgeRequires) {
		t.Errorf("edge opacity = %v, want encoder output", e.Opacity)
	}
}

func TestFromScenePlannedPositions(t *testing.T) {
	s := exportScene(t)
	enc := encode.New(encode.DefaultBounds, nil)

	layout.Planner{}.Plan(s)
	el := FromScene(s, enc)

	for i, n := range el.Nodes {
		if n.Position == nil {
			t.Fatalf("planned node %d should carry a preset position", i)
		}
	}
	if el.Nodes[1].Position.Y != layout.DefaultLevelHeight {
		t.Errorf("depth-1 node y = %v, want %v", el.Nodes[1].Position.Y, layout.DefaultLevelHeight)
	}
}

func TestToJSON(t *testing.T) {
	s := exportScene(t)
	el := FromScene(s, encode.New(encode.DefaultBounds, nil))

	out, err := el.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	// The output must be valid JSON with the Cytoscape field names.
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	for _, field := range []string{`"fullLabel"`, `"clusterId"`, `"isInterClusterEdge"`} {
		if !strings.Contains(out, field) {
			t.Errorf("ToJSON() missing field %s", field)
		}
	}
}
