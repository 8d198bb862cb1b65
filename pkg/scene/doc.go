// Package scene owns the mutable element set shared by the layout planner,
// the reveal pipeline, and the highlight engine.
//
// A [Scene] is built once from raw graph data and holds one element per node
// and edge. Elements carry the fully-defaulted semantic attributes plus the
// purely visual annotations (position, opacity, classes, grabbability) that
// this system mutates in place. The annotations never feed back into the
// data model.
//
// # Access discipline
//
// The scene is passed by reference to each component in a fixed pipeline
// order. To avoid hidden aliasing, each component sticks to its lane:
//
//   - pkg/layout writes InitialPos, reads semantic attributes
//   - pkg/reveal writes Opacity and Grabbable, reads positions
//   - pkg/highlight writes classes only
//
// Scene is not safe for concurrent use without external synchronization;
// the reveal pipeline's single-flight guard is the only mutual exclusion
// in the system.
package scene
