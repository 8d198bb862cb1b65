// Package viz exports a scene in Cytoscape.js form for browser frontends.
//
// The export carries the fully-defaulted element data, the planned preset
// positions, and the visual encoding resolved to concrete values, so the
// frontend can mount the graph without re-deriving any styling.
package viz

import (
	"encoding/json"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Elements is the Cytoscape.js element collection.
type Elements struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

// NodeElement wraps node data the way Cytoscape.js expects.
type NodeElement struct {
	Data     NodeData  `json:"data"`
	Position *Position `json:"position,omitempty"`
}

// Position is a preset coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData contains the node data fields.
type NodeData struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	FullLabel string  `json:"fullLabel"` // untruncated, for tooltips
	Depth     int     `json:"depth"`
	ClusterID int     `json:"clusterId"`

	// Resolved visual encoding
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"`
	Shape   string  `json:"shape"`
}

// EdgeElement wraps edge data the way Cytoscape.js expects.
type EdgeElement struct {
	Data EdgeData `json:"data"`
}

// EdgeData contains the edge data fields.
type EdgeData struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Type         string  `json:"type"`
	Weight       float64 `json:"weight"`
	InterCluster bool    `json:"isInterClusterEdge"`

	// Resolved visual encoding
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// FromScene converts a scene into Cytoscape.js elements. Planned positions
// are included when present; an unplanned scene exports without them.
func FromScene(s *scene.Scene, enc encode.Encoder) Elements {
	out := Elements{
		Nodes: make([]NodeElement, 0, s.NodeCount()),
		Edges: make([]EdgeElement, 0, s.EdgeCount()),
	}

	for _, n := range s.Nodes() {
		el := NodeElement{
			Data: NodeData{
				ID:        n.ID,
				Type:      n.Type,
				Label:     n.Label,
				FullLabel: n.Full,
				Depth:     n.Depth,
				ClusterID: n.ClusterID,
				Size:      enc.NodeSize(n.Pagerank),
				Opacity:   enc.NodeOpacity(n.Difficulty),
				Color:     encode.NodeColor(n.Type),
				Shape:     encode.NodeShape(n.Type),
			},
		}
		if n.InitialPos != nil {
			el.Position = &Position{X: n.InitialPos.X, Y: n.InitialPos.Y}
		}
		out.Nodes = append(out.Nodes, el)
	}

	for _, e := range s.Edges() {
		out.Edges = append(out.Edges, EdgeElement{
			Data: EdgeData{
				ID:           e.ID,
				Source:       e.Source,
				Target:       e.Target,
				Type:         e.Type,
				Weight:       e.Weight,
				InterCluster: e.InterCluster,
				Color:        enc.EdgeColor(e.Type),
				Opacity:      enc.EdgeOpacity(e.Type),
			},
		})
	}

	return out
}

// ToJSON serializes the elements for embedding in a page or API response.
func (e Elements) ToJSON() (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
