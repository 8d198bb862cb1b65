// Package encode maps node and edge statistics to visual attributes.
//
// All functions are pure and referentially transparent: the same inputs
// always produce the same size, opacity, or color. Encoders are usable
// before any element is attached to a rendering engine, so the same values
// drive both static style rules and animation targets.
package encode

import (
	"math"

	"github.com/conceptflow/conceptflow/pkg/graph"
)

// Bounds holds the output ranges for node encoding.
// The zero value is not usable - use DefaultBounds or set every field.
type Bounds struct {
	MinSize    float64 // smallest node diameter
	MaxSize    float64 // largest node diameter
	MinOpacity float64 // opacity at difficulty 1
	MaxOpacity float64 // opacity at difficulty 5
}

// DefaultBounds are the standard encoding ranges.
var DefaultBounds = Bounds{
	MinSize:    20,
	MaxSize:    80,
	MinOpacity: 0.35,
	MaxOpacity: 0.95,
}

// Encoder converts node/edge statistics into visual attributes using a fixed
// set of bounds and an explicit read-only style table. Construct with New;
// the zero value falls back to defaults on every call.
type Encoder struct {
	bounds Bounds
	styles StyleTable
}

// New creates an Encoder with the given bounds and style table.
// Zero-valued bounds fields and a nil style table fall back to defaults.
func New(bounds Bounds, styles StyleTable) Encoder {
	if bounds == (Bounds{}) {
		bounds = DefaultBounds
	}
	if styles == nil {
		styles = DefaultStyleTable()
	}
	return Encoder{bounds: bounds, styles: styles}
}

// NodeSize maps pagerank to a node diameter in [MinSize, MaxSize] using a
// log-compressed scale. Monotonic non-decreasing in pagerank; NodeSize(0)
// returns MinSize exactly.
func (e Encoder) NodeSize(pagerank float64) float64 {
	b := e.boundsOrDefault()
	t := math.Log(pagerank*1000+1) / math.Log(1000)
	t = clamp(t, 0, 1)
	return b.MinSize + (b.MaxSize-b.MinSize)*t
}

// NodeOpacity maps difficulty in [1,5] linearly into
// [MinOpacity, MaxOpacity]. Values outside the domain are clamped.
func (e Encoder) NodeOpacity(difficulty int) float64 {
	b := e.boundsOrDefault()
	t := clamp(float64(difficulty-1)/4, 0, 1)
	return b.MinOpacity + (b.MaxOpacity-b.MinOpacity)*t
}

// EdgeOpacity returns the target opacity for an edge type from the style
// table, or DefaultEdgeOpacity when the type has no entry.
func (e Encoder) EdgeOpacity(edgeType string) float64 {
	if s, ok := e.stylesOrDefault()[edgeType]; ok {
		return s.Opacity
	}
	return DefaultEdgeOpacity
}

// EdgeColor returns the display color for an edge type from the style table,
// or DefaultEdgeColor when the type has no entry.
func (e Encoder) EdgeColor(edgeType string) string {
	if s, ok := e.stylesOrDefault()[edgeType]; ok {
		return s.Color
	}
	return DefaultEdgeColor
}

func (e Encoder) boundsOrDefault() Bounds {
	if e.bounds == (Bounds{}) {
		return DefaultBounds
	}
	return e.bounds
}

func (e Encoder) stylesOrDefault() StyleTable {
	if e.styles == nil {
		return DefaultStyleTable()
	}
	return e.styles
}

// NodeColor returns the fill color for a node type.
func NodeColor(nodeType string) string {
	switch nodeType {
	case graph.NodeTypeChunk:
		return "#4a90d9"
	case graph.NodeTypeConcept:
		return "#9b59b6"
	case graph.NodeTypeAssessment:
		return "#e67e22"
	default:
		return "#7f8c8d"
	}
}

// NodeShape returns the Cytoscape shape name for a node type.
func NodeShape(nodeType string) string {
	switch nodeType {
	case graph.NodeTypeChunk:
		return "round-rectangle"
	case graph.NodeTypeConcept:
		return "ellipse"
	case graph.NodeTypeAssessment:
		return "diamond"
	default:
		return "ellipse"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
