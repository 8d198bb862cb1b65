// Package reveal drives the staged reveal of a planned scene.
//
// A Controller owns the pipeline that turns a freshly adapted scene into a
// settled, interactive view: plan positions, hide everything, fade nodes in
// depth level by depth level, fade edges in, then hand off to the external
// refinement layout. Each stage fully completes before the next starts, and
// at most one run is in flight per controller; callers that invoke Run while
// a run is active join it and receive its result.
package reveal

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/conceptflow/conceptflow/pkg/encode"
	"github.com/conceptflow/conceptflow/pkg/layout"
	"github.com/conceptflow/conceptflow/pkg/observability"
	"github.com/conceptflow/conceptflow/pkg/render"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// ReadyEvent is emitted once, after the first complete run, carrying handles
// for consumers that wire further UI on top of the settled graph.
type ReadyEvent struct {
	Engine     render.Engine
	Controller *Controller
}

// flight tracks one in-progress pipeline execution so concurrent callers can
// join it.
type flight struct {
	done chan struct{}
	err  error
}

// Controller is the animation controller for one scene. Create with New;
// the zero value is not usable.
//
// Controller methods are safe for concurrent use, but the scene it drives is
// not: the single-flight guard is the only mutual exclusion over the
// element set, so highlight actions must wait for pipeline completion.
type Controller struct {
	scn  *scene.Scene
	eng  render.Engine
	enc  encode.Encoder
	opts Options

	mu      sync.Mutex
	state   State
	flight  *flight
	cancel  context.CancelFunc
	plan    layout.Plan
	planned bool

	readyOnce sync.Once
	readyCh   chan ReadyEvent
}

// New creates a controller over the scene and engine.
func New(s *scene.Scene, eng render.Engine, enc encode.Encoder, opts Options) *Controller {
	opts.setDefaults()
	return &Controller{
		scn:     s,
		eng:     eng,
		enc:     enc,
		opts:    opts,
		readyCh: make(chan ReadyEvent, 1),
	}
}

// State returns the stage currently executing, or StateIdle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Animating reports whether a pipeline run is in flight.
func (c *Controller) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flight != nil
}

// Plan returns the arrangement computed by the most recent run.
// The second result is false before any run has planned.
func (c *Controller) Plan() (layout.Plan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan, c.planned
}

// Ready delivers the single ready event fired after the first complete run.
func (c *Controller) Ready() <-chan ReadyEvent {
	return c.readyCh
}

// Run executes the full pipeline. If a run is already in flight, Run does
// not start a second one: it waits for the active run and returns its
// result.
//
// Stage failures are logged and returned without retry or rollback; the
// partial visual state is left as-is. The controller always returns to
// StateIdle, whatever happened.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.flight != nil {
		f := c.flight
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	runCtx, cancel := context.WithCancel(ctx)
	c.flight = f
	c.cancel = cancel
	c.mu.Unlock()

	start := time.Now()
	observability.Reveal().OnRunStart(ctx, c.scn.NodeCount(), c.scn.EdgeCount())

	err := c.execute(runCtx)
	if err != nil {
		c.opts.Logger.Error("reveal pipeline failed", "stage", c.State().String(), "err", err)
	}

	// Back to idle no matter what, so a failed stage never leaves the
	// controller locked.
	c.mu.Lock()
	f.err = err
	c.state = StateIdle
	c.flight = nil
	c.cancel = nil
	c.mu.Unlock()
	cancel()
	close(f.done)

	observability.Reveal().OnRunComplete(ctx, time.Since(start), err)

	if err == nil {
		c.signalReady()
	}
	return err
}

// Stop forcibly aborts any in-flight run and snaps the scene to its
// fully-visible, fully-interactive terminal state: every node at opacity 1,
// every edge at its type-specific revealed opacity, interaction re-enabled.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	f := c.flight
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if f != nil {
		<-f.done
	}

	snap := context.Background()
	for _, n := range c.scn.Nodes() {
		if n.InitialPos != nil {
			c.eng.SetPosition(n.ID, *n.InitialPos)
		}
		_ = c.eng.Animate(snap, n.ID, render.Animation{Property: render.PropOpacity, Target: 1})
		n.Grabbable = true
	}
	for _, e := range c.scn.Edges() {
		_ = c.eng.Animate(snap, e.ID, render.Animation{Property: render.PropOpacity, Target: c.enc.EdgeOpacity(e.Type)})
	}
	c.opts.Logger.Debug("reveal stopped", "nodes", c.scn.NodeCount(), "edges", c.scn.EdgeCount())
}

// =============================================================================
// Stages
// =============================================================================

func (c *Controller) execute(ctx context.Context) error {
	if err := c.runStage(ctx, StatePlanning, c.stagePlan); err != nil {
		return err
	}
	if err := c.runStage(ctx, StateHidden, c.stageHide); err != nil {
		return err
	}
	if err := c.runStage(ctx, StateRevealingNodes, c.stageRevealNodes); err != nil {
		return err
	}
	if err := c.runStage(ctx, StateRevealingEdges, c.stageRevealEdges); err != nil {
		return err
	}
	if c.opts.SkipRefine {
		return nil
	}
	return c.runStage(ctx, StateRefining, c.stageRefine)
}

func (c *Controller) runStage(ctx context.Context, st State, fn func(context.Context) error) error {
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()

	observability.Reveal().OnStageStart(ctx, st.String())
	start := time.Now()
	err := fn(ctx)
	observability.Reveal().OnStageComplete(ctx, st.String(), time.Since(start), err)

	if err != nil {
		return fmt.Errorf("%s: %w", st, err)
	}
	c.opts.Logger.Debug("stage complete", "stage", st.String(), "duration", time.Since(start))
	return nil
}

// stagePlan computes the deterministic seed layout. Synchronous.
func (c *Controller) stagePlan(ctx context.Context) error {
	p := layout.Planner{LevelHeight: c.opts.LevelHeight, NodeSpacing: c.opts.NodeSpacing}
	plan := p.Plan(c.scn)

	c.mu.Lock()
	c.plan = plan
	c.planned = true
	c.mu.Unlock()

	observability.Layout().OnPlan(ctx, c.scn.NodeCount(), len(plan.Depths))
	return nil
}

// stageHide applies planned positions and forces every element invisible and
// non-interactive, so the viewer never sees an unpositioned flash.
func (c *Controller) stageHide(ctx context.Context) error {
	for _, n := range c.scn.Nodes() {
		if n.InitialPos != nil {
			c.eng.SetPosition(n.ID, *n.InitialPos)
		}
		if err := c.eng.Animate(ctx, n.ID, render.Animation{Property: render.PropOpacity, Target: 0}); err != nil {
			return err
		}
		n.Grabbable = false
	}
	for _, e := range c.scn.Edges() {
		if err := c.eng.Animate(ctx, e.ID, render.Animation{Property: render.PropOpacity, Target: 0}); err != nil {
			return err
		}
	}
	return nil
}

// stageRevealNodes fades nodes in one depth level at a time, awaiting each
// level before advancing, then re-enables interaction.
func (c *Controller) stageRevealNodes(ctx context.Context) error {
	c.mu.Lock()
	plan := c.plan
	c.mu.Unlock()

	for _, depth := range plan.Depths {
		ids := plan.Rows[depth]
		order := c.issueOrder(ids, depth)

		fade := c.opts.NodeFade
		if depth == 0 {
			fade = c.opts.RootFade
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range order {
			n, ok := c.scn.Node(id)
			if !ok {
				continue
			}
			a := render.Animation{
				Property: render.PropOpacity,
				Target:   c.enc.NodeOpacity(n.Difficulty),
				Duration: fade,
				Easing:   render.EaseOutCubic,
			}
			g.Go(func() error { return c.eng.Animate(gctx, n.ID, a) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
		c.opts.Logger.Debug("depth revealed", "depth", depth, "nodes", len(ids))
	}

	for _, n := range c.scn.Nodes() {
		n.Grabbable = true
	}
	return nil
}

// stageRevealEdges waits for the last node to settle visually, then fades
// every edge in concurrently to its type-specific target opacity.
func (c *Controller) stageRevealEdges(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.opts.EdgeDelay):
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range c.scn.Edges() {
		a := render.Animation{
			Property: render.PropOpacity,
			Target:   c.enc.EdgeOpacity(e.Type),
			Duration: c.opts.EdgeFade,
			Easing:   render.EaseLinear,
		}
		g.Go(func() error { return c.eng.Animate(gctx, e.ID, a) })
	}
	return g.Wait()
}

// stageRefine invokes the external layout refiner once.
func (c *Controller) stageRefine(ctx context.Context) error {
	start := time.Now()
	err := c.eng.Refine(ctx)
	observability.Layout().OnRefine(ctx, time.Since(start), err)
	return err
}

// issueOrder returns the order fade-ins are issued within one depth:
// the planned row order, or a seeded shuffle of it when jitter is on.
func (c *Controller) issueOrder(ids []string, depth int) []string {
	order := make([]string, len(ids))
	copy(order, ids)
	if !c.opts.Jitter {
		return order
	}
	r := rand.New(rand.NewSource(int64(c.opts.Seed) + int64(depth)))
	r.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

func (c *Controller) signalReady() {
	c.readyOnce.Do(func() {
		c.readyCh <- ReadyEvent{Engine: c.eng, Controller: c}
	})
}
