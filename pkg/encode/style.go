package encode

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	cferrors "github.com/conceptflow/conceptflow/pkg/errors"
	"github.com/conceptflow/conceptflow/pkg/graph"
)

// EdgeStyle is one entry of the per-type edge style table.
type EdgeStyle struct {
	Color   string  `toml:"color"`
	Opacity float64 `toml:"opacity"`
}

// StyleTable maps an edge type to its display style. It is read-only
// configuration: build it once and pass it into New, never mutate it after.
type StyleTable map[string]EdgeStyle

// Fallbacks for edge types unknown to the style table.
const (
	DefaultEdgeOpacity = 0.6
	DefaultEdgeColor   = "#95a5a6"
)

// DefaultStyleTable returns the built-in style table covering all nine
// pedagogical relation kinds.
func DefaultStyleTable() StyleTable {
	return StyleTable{
		graph.EdgeRequires:    {Color: "#c0392b", Opacity: 0.9},
		graph.EdgeExplains:    {Color: "#2980b9", Opacity: 0.8},
		graph.EdgeExemplifies: {Color: "#27ae60", Opacity: 0.7},
		graph.EdgeTests:       {Color: "#d35400", Opacity: 0.8},
		graph.EdgeElaborates:  {Color: "#8e44ad", Opacity: 0.6},
		graph.EdgeContrasts:   {Color: "#f39c12", Opacity: 0.6},
		graph.EdgeSummarizes:  {Color: "#16a085", Opacity: 0.6},
		graph.EdgeApplies:     {Color: "#2c3e50", Opacity: 0.7},
		graph.EdgeRemediates:  {Color: "#7f8c8d", Opacity: 0.5},
	}
}

// styleFile is the TOML schema for style table files:
//
//	[edge.REQUIRES]
//	color = "#c0392b"
//	opacity = 0.9
type styleFile struct {
	Edge map[string]EdgeStyle `toml:"edge"`
}

// LoadStyleTable reads a style table from a TOML file. Entries in the file
// override the built-in defaults; types absent from the file keep theirs.
func LoadStyleTable(path string) (StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f styleFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidStyle, err, "parse style table %s", path)
	}

	table := DefaultStyleTable()
	for typ, style := range f.Edge {
		if style.Opacity < 0 || style.Opacity > 1 {
			return nil, cferrors.New(cferrors.ErrCodeInvalidStyle,
				"edge type %s: opacity %v out of range [0,1]", typ, style.Opacity)
		}
		if style.Color == "" {
			style.Color = DefaultEdgeColor
		}
		table[typ] = style
	}
	return table, nil
}
