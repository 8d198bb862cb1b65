package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Planned Positions
// =============================================================================

// Layout is the serialization format for a planned arrangement: the
// deterministic seed positions computed from prerequisite depth and cluster
// ordering, before any refinement pass.
type Layout struct {
	// Spacing used when the plan was computed.
	LevelHeight float64 `json:"level_height"`
	NodeSpacing float64 `json:"node_spacing"`

	// Rows maps prerequisite depth to node IDs in left-to-right order.
	Rows map[int][]string `json:"rows"`

	// Nodes carries the placed nodes with their computed coordinates and
	// static visual encoding.
	Nodes []PlacedNode `json:"nodes"`
}

// PlacedNode is a node with its planned position and visual encoding.
type PlacedNode struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the layout contains placed nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain placed nodes")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
