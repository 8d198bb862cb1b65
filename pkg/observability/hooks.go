// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about reveal-pipeline execution and
// refinement-layout passes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRevealHooks(&myRevealHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Reveal().OnStageStart(ctx, stage)
//	// ... run the stage ...
//	observability.Reveal().OnStageComplete(ctx, stage, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Reveal Hooks
// =============================================================================

// RevealHooks receives events from the reveal pipeline.
type RevealHooks interface {
	// OnRunStart fires when a pipeline run begins (not for joined callers).
	OnRunStart(ctx context.Context, nodeCount, edgeCount int)

	// OnStageStart fires when a pipeline stage begins.
	OnStageStart(ctx context.Context, stage string)

	// OnStageComplete fires when a pipeline stage finishes.
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// OnRunComplete fires when the run returns to idle.
	OnRunComplete(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from planning and refinement passes.
type LayoutHooks interface {
	// OnPlan records a planner pass.
	OnPlan(ctx context.Context, nodeCount, rowCount int)

	// OnRefine records a refinement-layout pass.
	OnRefine(ctx context.Context, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRevealHooks is a no-op implementation of RevealHooks.
type NoopRevealHooks struct{}

func (NoopRevealHooks) OnRunStart(context.Context, int, int)                          {}
func (NoopRevealHooks) OnStageStart(context.Context, string)                          {}
func (NoopRevealHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopRevealHooks) OnRunComplete(context.Context, time.Duration, error)           {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPlan(context.Context, int, int)               {}
func (NoopLayoutHooks) OnRefine(context.Context, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	revealHooks RevealHooks = NoopRevealHooks{}
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	hooksMu     sync.RWMutex
)

// SetRevealHooks registers custom reveal-pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetRevealHooks(h RevealHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		revealHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout passes.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// Reveal returns the registered reveal hooks.
func Reveal() RevealHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return revealHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	revealHooks = NoopRevealHooks{}
	layoutHooks = NoopLayoutHooks{}
}
