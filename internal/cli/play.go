package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/conceptflow/conceptflow/pkg/highlight"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/render"
	"github.com/conceptflow/conceptflow/pkg/render/dotlayout"
	"github.com/conceptflow/conceptflow/pkg/reveal"
)

// playFlags holds the flag values for the play command.
type playFlags struct {
	speed     float64
	jitter    bool
	seed      uint64
	noRefine  bool
	stylePath string
	path      string
}

// newPlayCmd creates the play command for animating the staged reveal.
func newPlayCmd() *cobra.Command {
	var flags playFlags

	cmd := &cobra.Command{
		Use:   "play [graph.json]",
		Short: "Play the staged reveal as a terminal animation",
		Long: `Play the staged reveal pipeline for a knowledge graph.

The graph is planned into depth rows, hidden, then faded in row by row with
edges following. Press "s" to stop early and snap every element to its final
visible state, or "q" to quit.

With --path, the named nodes are highlighted step by step after the reveal
completes, dimming the rest of the diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().Float64Var(&flags.speed, "speed", 1.0, "animation speed multiplier (0 completes instantly)")
	cmd.Flags().BoolVar(&flags.jitter, "jitter", false, "randomize fade-in order within each row")
	cmd.Flags().Uint64Var(&flags.seed, "seed", reveal.DefaultSeed, "seed for the jitter shuffle")
	cmd.Flags().BoolVar(&flags.noRefine, "no-refine", false, "skip the Graphviz refinement stage")
	cmd.Flags().StringVar(&flags.stylePath, "style", "", "TOML style table overriding edge colors and opacities")
	cmd.Flags().StringVar(&flags.path, "path", "", "comma-separated node ids to highlight after the reveal")

	return cmd
}

// runPlay wires the scene, engine, and controller into a bubbletea program
// and drives the reveal pipeline against it.
func runPlay(ctx context.Context, input string, flags playFlags) error {
	logger := loggerFromContext(ctx)

	scn, enc, _, err := loadScene(input, flags.stylePath)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var prog *tea.Program
	var layouter render.Layouter
	if !flags.noRefine {
		layouter = dotlayout.Refiner{
			LevelHeight: layout.DefaultLevelHeight,
			NodeSpacing: layout.DefaultNodeSpacing,
		}
	}

	eng := render.NewHeadless(scn, render.HeadlessOptions{
		Speed:    flags.speed,
		Layouter: layouter,
		OnFrame: func() {
			if prog != nil {
				prog.Send(snapshotFrame(scn))
			}
		},
	})

	ctrl := reveal.New(scn, eng, enc, reveal.Options{
		Jitter:     flags.jitter,
		Seed:       flags.seed,
		SkipRefine: flags.noRefine,
		Logger:     logger,
	})

	prog = tea.NewProgram(NewPlayerModel(ctrl), tea.WithAltScreen())

	go func() {
		err := ctrl.Run(runCtx)
		if errors.Is(err, context.Canceled) {
			// Stopped or quit mid-run. Not a pipeline failure.
			err = nil
		}
		if err == nil && flags.path != "" {
			hl := highlight.New(scn, eng, highlight.Options{Logger: logger})
			err = hl.HighlightPath(runCtx, splitPath(flags.path), highlight.DefaultPathOptions())
		}
		prog.Send(playDoneMsg{err: err})
	}()

	final, err := prog.Run()
	cancel()
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if m, ok := final.(PlayerModel); ok && m.err != nil {
		return fmt.Errorf("reveal: %w", m.err)
	}

	printSuccess("Reveal finished")
	printStats(scn.NodeCount(), scn.EdgeCount())
	return nil
}

// splitPath parses the --path flag into trimmed node ids.
func splitPath(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
