// Package render defines the rendering-engine contract the reveal pipeline
// and highlight engine depend on, plus a headless in-memory implementation.
//
// The core treats the engine as a black box with exactly four capabilities:
// holding positioned elements, animating a style property to a target with a
// completion signal, running a directed auto-layout over the current element
// set, and applying class-based style overrides. Anything beyond that
// (zoom/pan, DOM lifecycle, actual drawing) belongs to the embedding
// frontend, not this module.
package render

import (
	"context"
	"time"

	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Property names an animatable style property.
type Property string

// Animatable properties.
const (
	PropOpacity Property = "opacity"
)

// Easing names an animation easing function.
type Easing string

// Supported easings.
const (
	EaseLinear   Easing = "linear"
	EaseOutCubic Easing = "ease-out-cubic"
)

// Animation describes a single property transition.
type Animation struct {
	Property Property
	Target   float64
	Duration time.Duration
	Easing   Easing
}

// Engine is the rendering collaborator contract.
//
// Animate and Refine block until the transition or layout pass completes,
// standing in for the completion callbacks a browser engine would deliver;
// cancel ctx to abandon them early.
type Engine interface {
	// SetPosition places an element at the given coordinate.
	SetPosition(id string, pos scene.Point)

	// Animate transitions one style property of the element to a target
	// value and returns once the transition has completed.
	Animate(ctx context.Context, id string, a Animation) error

	// Refine runs a directed auto-layout pass over the current element set
	// and returns once it completes.
	Refine(ctx context.Context) error

	// AddClass applies a CSS-like class-based style override.
	AddClass(id, class string)

	// RemoveClass removes a class-based style override.
	RemoveClass(id, class string)
}

// Layouter is the pluggable refinement algorithm behind Engine.Refine.
type Layouter interface {
	Layout(ctx context.Context, s *scene.Scene) error
}

// LayouterFunc adapts a function to the Layouter interface.
type LayouterFunc func(ctx context.Context, s *scene.Scene) error

// Layout implements Layouter.
func (f LayouterFunc) Layout(ctx context.Context, s *scene.Scene) error {
	return f(ctx, s)
}

// ease applies the named easing to a progress value in [0,1].
func ease(e Easing, t float64) float64 {
	switch e {
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	default:
		return t
	}
}
