package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/render/dotlayout"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// planFlags holds the flag values for the plan command.
type planFlags struct {
	output      string
	levelHeight float64
	nodeSpacing float64
	refine      bool
	stylePath   string
}

// newPlanCmd creates the plan command for computing seed layouts.
func newPlanCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan [graph.json]",
		Short: "Compute the deterministic seed layout for a graph",
		Long: `Compute the deterministic seed layout for a knowledge graph.

The plan command groups nodes into rows by prerequisite depth, orders each
row by cluster id, and centers rows horizontally. The result is written as a
layout.json with per-node coordinates and resolved visual encoding.

With --refine, a Graphviz crossing-reduction pass reorders each row before
the layout is written; rows themselves never move.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().Float64Var(&flags.levelHeight, "level-height", layout.DefaultLevelHeight, "vertical distance between depth rows")
	cmd.Flags().Float64Var(&flags.nodeSpacing, "node-spacing", layout.DefaultNodeSpacing, "horizontal distance between nodes in a row")
	cmd.Flags().BoolVar(&flags.refine, "refine", false, "apply the Graphviz crossing-reduction pass")
	cmd.Flags().StringVar(&flags.stylePath, "style", "", "TOML style table overriding edge colors and opacities")

	return cmd
}

// runPlan loads the graph, plans it, and writes the layout file.
func runPlan(ctx context.Context, input string, flags planFlags) error {
	logger := loggerFromContext(ctx)

	scn, enc, _, err := loadScene(input, flags.stylePath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	planner := layout.Planner{LevelHeight: flags.levelHeight, NodeSpacing: flags.nodeSpacing}
	plan := planner.Plan(scn)
	prog.done(fmt.Sprintf("Planned %d nodes into %d rows", scn.NodeCount(), len(plan.Depths)))

	if flags.refine {
		spinner := newSpinnerWithContext(ctx, "Refining layout...")
		spinner.Start()
		refiner := dotlayout.Refiner{LevelHeight: flags.levelHeight, NodeSpacing: flags.nodeSpacing}
		if err := refiner.Layout(ctx, scn); err != nil {
			if spinner.Cancelled() {
				spinner.Stop()
			} else {
				spinner.StopWithError("Refinement failed")
			}
			return fmt.Errorf("refine: %w", err)
		}
		spinner.StopWithSuccess("Layout refined")
	}

	output := flags.output
	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".layout.json"
	}

	l := buildLayout(scn, plan, enc, flags.levelHeight, flags.nodeSpacing)
	if err := graph.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	printSuccess("Layout written")
	printFile(output)
	printStats(scn.NodeCount(), scn.EdgeCount())
	printNextStep("Play the reveal", "conceptflow play "+input)
	return nil
}

// buildLayout assembles the serializable layout from a planned scene.
func buildLayout(scn *scene.Scene, plan layout.Plan, enc encode.Encoder, levelHeight, nodeSpacing float64) graph.Layout {
	l := graph.Layout{
		LevelHeight: levelHeight,
		NodeSpacing: nodeSpacing,
		Rows:        plan.Rows,
	}
	for _, depth := range plan.Depths {
		for _, id := range plan.Rows[depth] {
			n, ok := scn.Node(id)
			if !ok || n.InitialPos == nil {
				continue
			}
			l.Nodes = append(l.Nodes, graph.PlacedNode{
				ID:      n.ID,
				Type:    n.Type,
				Label:   n.Label,
				X:       n.InitialPos.X,
				Y:       n.InitialPos.Y,
				Size:    enc.NodeSize(n.Pagerank),
				Opacity: enc.NodeOpacity(n.Difficulty),
			})
		}
	}
	return l
}
