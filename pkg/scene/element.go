package scene

// Point is a 2-D coordinate in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// classSet holds the transient style classes applied to an element.
type classSet map[string]struct{}

func (c classSet) add(name string)    { c[name] = struct{}{} }
func (c classSet) remove(name string) { delete(c, name) }
func (c classSet) has(name string) bool {
	_, ok := c[name]
	return ok
}

// NodeElement is the renderer-facing representation of one node.
//
// Semantic attributes are fully defaulted at adaptation time, so consumers
// never check for absence. InitialPos, Opacity, Grabbable, and classes are
// the mutable visual annotations confined to this core.
type NodeElement struct {
	ID    string
	Type  string
	Label string // truncated display label
	Full  string // untruncated text, kept for tooltips

	Difficulty  int
	Pagerank    float64
	ClusterID   int
	BridgeScore float64
	Depth       int // prerequisite depth; row assignment

	// InitialPos is the cached planner output. Nil until planning runs.
	InitialPos *Point
	Opacity    float64
	Grabbable  bool

	classes classSet
}

// AddClass applies a transient style class to the node.
func (n *NodeElement) AddClass(name string) { n.classes.add(name) }

// RemoveClass removes a transient style class from the node.
func (n *NodeElement) RemoveClass(name string) { n.classes.remove(name) }

// HasClass reports whether the node currently carries the class.
func (n *NodeElement) HasClass(name string) bool { return n.classes.has(name) }

// EdgeElement is the renderer-facing representation of one directed edge.
type EdgeElement struct {
	ID     string // synthetic, stable per (source, target, type)
	Source string
	Target string
	Type   string

	Weight       float64
	InterCluster bool

	Opacity float64

	classes classSet
}

// AddClass applies a transient style class to the edge.
func (e *EdgeElement) AddClass(name string) { e.classes.add(name) }

// RemoveClass removes a transient style class from the edge.
func (e *EdgeElement) RemoveClass(name string) { e.classes.remove(name) }

// HasClass reports whether the edge currently carries the class.
func (e *EdgeElement) HasClass(name string) bool { return e.classes.has(name) }
