package render

import (
	"context"
	"sync"
	"time"

	"github.com/conceptflow/conceptflow/pkg/scene"
)

// frameInterval is the tick at which the headless engine advances running
// animations. Roughly 30 fps, plenty for terminal playback.
const frameInterval = 33 * time.Millisecond

// HeadlessOptions configures a headless engine.
type HeadlessOptions struct {
	// Speed scales animation durations. 1 plays in real time, 0 completes
	// every animation instantly (the test default).
	Speed float64

	// Layouter backs Refine. Nil means Refine is a no-op that still
	// reports completion.
	Layouter Layouter

	// OnFrame, if set, is called after every visual change the engine
	// applies (intermediate animation frames included). It runs with the
	// engine lock held so the hook sees a consistent scene; it must not
	// call back into the engine. Used by the terminal player to repaint.
	OnFrame func()
}

// Headless is an in-memory Engine over a scene. It stores display positions,
// writes animated opacities back onto the scene elements, and delegates
// class toggling to the element class sets.
//
// Headless serializes all scene writes behind one mutex, so concurrently
// issued animations (the edge-reveal stage) are safe.
type Headless struct {
	scn  *scene.Scene
	opts HeadlessOptions

	mu  sync.Mutex
	pos map[string]scene.Point
}

// NewHeadless creates a headless engine over the scene.
func NewHeadless(s *scene.Scene, opts HeadlessOptions) *Headless {
	return &Headless{
		scn:  s,
		opts: opts,
		pos:  make(map[string]scene.Point),
	}
}

// SetPosition implements Engine.
func (h *Headless) SetPosition(id string, pos scene.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pos[id] = pos
	h.frame()
}

// Position returns the current display position of an element.
func (h *Headless) Position(id string) (scene.Point, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pos[id]
	return p, ok
}

// Animate implements Engine. With Speed 0 the target is applied immediately;
// otherwise the property is stepped at the frame interval with the requested
// easing until the scaled duration elapses. Cancelling ctx stops the
// animation mid-flight and leaves the property at its last applied value.
func (h *Headless) Animate(ctx context.Context, id string, a Animation) error {
	from := h.readProp(id, a.Property)

	total := time.Duration(float64(a.Duration) * h.opts.Speed)
	if total <= 0 {
		h.writeProp(id, a.Property, a.Target)
		return nil
	}

	start := time.Now()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t := float64(now.Sub(start)) / float64(total)
			if t >= 1 {
				h.writeProp(id, a.Property, a.Target)
				return nil
			}
			h.writeProp(id, a.Property, from+(a.Target-from)*ease(a.Easing, t))
		}
	}
}

// Refine implements Engine by delegating to the configured Layouter.
func (h *Headless) Refine(ctx context.Context) error {
	if h.opts.Layouter == nil {
		return nil
	}
	if err := h.opts.Layouter.Layout(ctx, h.scn); err != nil {
		return err
	}
	// Adopt any refined element positions into the display state.
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, n := range h.scn.Nodes() {
		if n.InitialPos != nil {
			h.pos[n.ID] = *n.InitialPos
		}
	}
	h.frame()
	return nil
}

// AddClass implements Engine.
func (h *Headless) AddClass(id, class string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := h.scn.Node(id); ok {
		n.AddClass(class)
	} else if e, ok := h.scn.Edge(id); ok {
		e.AddClass(class)
	}
	h.frame()
}

// RemoveClass implements Engine.
func (h *Headless) RemoveClass(id, class string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := h.scn.Node(id); ok {
		n.RemoveClass(class)
	} else if e, ok := h.scn.Edge(id); ok {
		e.RemoveClass(class)
	}
	h.frame()
}

func (h *Headless) readProp(id string, p Property) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch p {
	case PropOpacity:
		if n, ok := h.scn.Node(id); ok {
			return n.Opacity
		}
		if e, ok := h.scn.Edge(id); ok {
			return e.Opacity
		}
	}
	return 0
}

func (h *Headless) writeProp(id string, p Property, v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.frame()
	switch p {
	case PropOpacity:
		if n, ok := h.scn.Node(id); ok {
			n.Opacity = v
		} else if e, ok := h.scn.Edge(id); ok {
			e.Opacity = v
		}
	}
}

func (h *Headless) frame() {
	if h.opts.OnFrame != nil {
		h.opts.OnFrame()
	}
}
