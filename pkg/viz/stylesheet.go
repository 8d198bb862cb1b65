package viz

import (
	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/highlight"
)

// StyleRule is one Cytoscape.js stylesheet entry. Rule order matters:
// later rules win on equal specificity.
type StyleRule struct {
	Selector string         `json:"selector"`
	Style    map[string]any `json:"style"`
}

// Stylesheet generates the ordered stylesheet for an exported scene.
//
// Type-based rules come first; the hover/dim/highlight override rules are
// emitted last so the transient interaction states are never shadowed by
// type-specific styling.
func Stylesheet(styles encode.StyleTable) []StyleRule {
	if styles == nil {
		styles = encode.DefaultStyleTable()
	}

	rules := []StyleRule{
		{
			Selector: "node",
			Style: map[string]any{
				"width":             "data(size)",
				"height":            "data(size)",
				"opacity":           "data(opacity)",
				"background-color":  "data(color)",
				"shape":             "data(shape)",
				"label":             "data(label)",
				"font-size":         10,
				"text-valign":       "bottom",
				"text-margin-y":     4,
			},
		},
		{
			Selector: "edge",
			Style: map[string]any{
				"width":              "mapData(weight, 0, 1, 1, 4)",
				"line-color":         "data(color)",
				"opacity":            "data(opacity)",
				"curve-style":        "bezier",
				"target-arrow-shape": "triangle",
				"target-arrow-color": "data(color)",
			},
		},
	}

	// Per-type edge rules in display order, so the table remains visibly
	// authoritative even when a frontend overrides data fields.
	for _, typ := range graph.EdgeTypes {
		s, ok := styles[typ]
		if !ok {
			continue
		}
		rules = append(rules, StyleRule{
			Selector: `edge[type = "` + typ + `"]`,
			Style: map[string]any{
				"line-color":         s.Color,
				"target-arrow-color": s.Color,
				"opacity":            s.Opacity,
			},
		})
	}

	// Interaction overrides last. Keep this block at the end.
	rules = append(rules,
		StyleRule{
			Selector: "." + highlight.ClassHover,
			Style: map[string]any{
				"line-color":         "#f1c40f",
				"target-arrow-color": "#f1c40f",
				"background-color":   "#f1c40f",
				"opacity":            1,
			},
		},
		StyleRule{
			Selector: "." + highlight.ClassHighlighted,
			Style: map[string]any{
				"background-color":   "#e74c3c",
				"line-color":         "#e74c3c",
				"target-arrow-color": "#e74c3c",
				"opacity":            1,
			},
		},
		StyleRule{
			Selector: "." + highlight.ClassDimmed,
			Style: map[string]any{
				"opacity": 0.15,
			},
		},
	)

	return rules
}
