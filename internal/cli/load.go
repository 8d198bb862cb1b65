package cli

import (
	"fmt"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// loadScene reads a graph file, adapts it into a scene, and builds the
// encoder, honoring an optional TOML style table.
func loadScene(input, stylePath string) (*scene.Scene, encode.Encoder, encode.StyleTable, error) {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return nil, encode.Encoder{}, nil, fmt.Errorf("load graph %s: %w", input, err)
	}

	scn, err := scene.New(g)
	if err != nil {
		return nil, encode.Encoder{}, nil, fmt.Errorf("adapt graph %s: %w", input, err)
	}

	styles := encode.DefaultStyleTable()
	if stylePath != "" {
		styles, err = encode.LoadStyleTable(stylePath)
		if err != nil {
			return nil, encode.Encoder{}, nil, err
		}
	}

	return scn, encode.New(encode.DefaultBounds, styles), styles, nil
}
