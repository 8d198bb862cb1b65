package highlight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/render"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// chainScene builds a -> b -> c with one edge off the path (a -> c).
func chainScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.NodeTypeConcept},
			{ID: "b", Type: graph.NodeTypeConcept},
			{ID: "c", Type: graph.NodeTypeAssessment},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b", Type: graph.EdgeRequires},
			{Source: "b", Target: "c", Type: graph.EdgeTests},
			{Source: "a", Target: "c", Type: graph.EdgeApplies},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newHighlighter(t *testing.T, s *scene.Scene) *Highlighter {
	t.Helper()
	eng := render.NewHeadless(s, render.HeadlessOptions{})
	return New(s, eng, Options{StepDelay: time.Millisecond})
}

func pathEdge(t *testing.T, s *scene.Scene, source, target string) *scene.EdgeElement {
	t.Helper()
	edges := s.EdgesBetween(source, target)
	if len(edges) != 1 {
		t.Fatalf("EdgesBetween(%s, %s) = %d edges, want 1", source, target, len(edges))
	}
	return edges[0]
}

func TestHighlightPath(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	if err := h.HighlightPath(context.Background(), []string{"a", "b", "c"}, DefaultPathOptions()); err != nil {
		t.Fatalf("HighlightPath() error = %v", err)
	}

	// Path nodes are highlighted and undimmed.
	for _, id := range []string{"a", "b", "c"} {
		n, _ := s.Node(id)
		if !n.HasClass(ClassHighlighted) {
			t.Errorf("node %s should be highlighted", id)
		}
		if n.HasClass(ClassDimmed) {
			t.Errorf("node %s should be undimmed", id)
		}
	}

	// Path edges follow the walk direction.
	for _, step := range [][2]string{{"a", "b"}, {"b", "c"}} {
		e := pathEdge(t, s, step[0], step[1])
		if !e.HasClass(ClassHighlighted) || e.HasClass(ClassDimmed) {
			t.Errorf("edge %s->%s should be highlighted and undimmed", step[0], step[1])
		}
	}

	// The off-path edge stays dimmed and unhighlighted.
	off := pathEdge(t, s, "a", "c")
	if off.HasClass(ClassHighlighted) {
		t.Error("off-path edge should not be highlighted")
	}
	if !off.HasClass(ClassDimmed) {
		t.Error("off-path edge should stay dimmed")
	}
}

func TestHighlightPathNoDim(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	if err := h.HighlightPath(context.Background(), []string{"a", "b"}, PathOptions{}); err != nil {
		t.Fatalf("HighlightPath() error = %v", err)
	}

	c, _ := s.Node("c")
	if c.HasClass(ClassDimmed) {
		t.Error("DimOthers off should not dim anything")
	}
}

func TestHighlightPathSkipsUnknownIDs(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	err := h.HighlightPath(context.Background(), []string{"a", "ghost", "c"}, DefaultPathOptions())
	if err != nil {
		t.Fatalf("HighlightPath() with unknown id error = %v, want skipped", err)
	}

	a, _ := s.Node("a")
	c, _ := s.Node("c")
	if !a.HasClass(ClassHighlighted) || !c.HasClass(ClassHighlighted) {
		t.Error("known ids around a skipped one should still be highlighted")
	}

	// The walk connects the present ids across the gap.
	e := pathEdge(t, s, "a", "c")
	if !e.HasClass(ClassHighlighted) || e.HasClass(ClassDimmed) {
		t.Error("edge a->c should be highlighted across the skipped id")
	}
}

func TestHighlightPathCancelled(t *testing.T) {
	s := chainScene(t)
	eng := render.NewHeadless(s, render.HeadlessOptions{})
	h := New(s, eng, Options{StepDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.HighlightPath(ctx, []string{"a", "b", "c"}, DefaultPathOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("HighlightPath() error = %v, want context.Canceled", err)
	}
}

func TestClearHighlights(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	if err := h.HighlightPath(context.Background(), []string{"a", "b"}, DefaultPathOptions()); err != nil {
		t.Fatal(err)
	}
	h.HoverConnect("c")

	h.ClearHighlights()
	h.ClearHighlights() // idempotent

	for _, n := range s.Nodes() {
		for _, class := range []string{ClassHighlighted, ClassDimmed, ClassHover} {
			if n.HasClass(class) {
				t.Errorf("node %s still carries %s after clear", n.ID, class)
			}
		}
	}
	for _, e := range s.Edges() {
		for _, class := range []string{ClassHighlighted, ClassDimmed, ClassHover} {
			if e.HasClass(class) {
				t.Errorf("edge %s->%s still carries %s after clear", e.Source, e.Target, class)
			}
		}
	}
}

func TestHoverConnect(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	h.HoverConnect("b")

	// b, its incident edges, and their endpoints carry the hover state.
	for _, id := range []string{"a", "b", "c"} {
		n, _ := s.Node(id)
		if !n.HasClass(ClassHover) {
			t.Errorf("node %s should carry hover state", id)
		}
	}
	if e := pathEdge(t, s, "a", "b"); !e.HasClass(ClassHover) {
		t.Error("incident edge a->b should carry hover state")
	}
	if e := pathEdge(t, s, "a", "c"); e.HasClass(ClassHover) {
		t.Error("non-incident edge a->c should not carry hover state")
	}

	h.Unhover("b")
	for _, n := range s.Nodes() {
		if n.HasClass(ClassHover) {
			t.Errorf("node %s still hovered after Unhover", n.ID)
		}
	}
}

func TestHoverUnknownID(t *testing.T) {
	s := chainScene(t)
	h := newHighlighter(t, s)

	// Unknown ids are ignored without panicking.
	h.HoverConnect("ghost")
	h.Unhover("ghost")

	for _, n := range s.Nodes() {
		if n.HasClass(ClassHover) {
			t.Errorf("node %s should be untouched", n.ID)
		}
	}
}
