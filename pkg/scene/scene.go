package scene

import (
	"github.com/google/uuid"

	cferrors "github.com/conceptflow/conceptflow/pkg/errors"
	"github.com/conceptflow/conceptflow/pkg/graph"
)

// Defaults applied to absent optional attributes, per the input contract.
const (
	DefaultDifficulty = 3
	DefaultPagerank   = 0.01
	DefaultWeight     = 0.5

	// MaxLabelRunes is the display-label character budget. Longer labels
	// are shortened with a trailing ellipsis; the full text is preserved
	// on the element for tooltips.
	MaxLabelRunes = 24
)

// edgeIDSpace namespaces the deterministic edge element ids.
var edgeIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("conceptflow/edge"))

// Scene is the single owned element set. See the package doc for the
// per-component access discipline.
type Scene struct {
	nodes []*NodeElement
	edges []*EdgeElement

	nodeByID map[string]*NodeElement
	edgeByID map[string]*EdgeElement
	incident map[string][]*EdgeElement // node ID -> edges touching it
}

// New adapts raw graph records into a Scene.
//
// Adaptation is total over optional attributes: absent difficulty, pagerank,
// cluster, bridge score, depth, and weight receive their contract defaults.
// A missing node id/type, a missing edge endpoint, a duplicate node id, a
// duplicate (source, target, type) edge, or an edge referencing an unknown
// node is a fatal input-contract violation and aborts initialization.
func New(g graph.Graph) (*Scene, error) {
	s := &Scene{
		nodeByID: make(map[string]*NodeElement, len(g.Nodes)),
		edgeByID: make(map[string]*EdgeElement, len(g.Edges)),
		incident: make(map[string][]*EdgeElement),
	}

	for i, n := range g.Nodes {
		if err := cferrors.ValidateElementID(n.ID); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidNode, err, "node %d", i)
		}
		if n.Type == "" {
			return nil, cferrors.New(cferrors.ErrCodeInvalidNode, "node %q: missing type", n.ID)
		}
		if _, dup := s.nodeByID[n.ID]; dup {
			return nil, cferrors.New(cferrors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}

		el := adaptNode(n)
		s.nodes = append(s.nodes, el)
		s.nodeByID[n.ID] = el
	}

	for i, e := range g.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, cferrors.New(cferrors.ErrCodeInvalidEdge, "edge %d: missing source or target", i)
		}
		if _, ok := s.nodeByID[e.Source]; !ok {
			return nil, cferrors.New(cferrors.ErrCodeInvalidEdge, "edge %d: unknown source node %q", i, e.Source)
		}
		if _, ok := s.nodeByID[e.Target]; !ok {
			return nil, cferrors.New(cferrors.ErrCodeInvalidEdge, "edge %d: unknown target node %q", i, e.Target)
		}

		el := adaptEdge(e)
		if _, dup := s.edgeByID[el.ID]; dup {
			return nil, cferrors.New(cferrors.ErrCodeInvalidGraph, "duplicate edge %s -> %s (%s)", e.Source, e.Target, e.Type)
		}
		s.edges = append(s.edges, el)
		s.edgeByID[el.ID] = el
		s.incident[e.Source] = append(s.incident[e.Source], el)
		s.incident[e.Target] = append(s.incident[e.Target], el)
	}

	return s, nil
}

// adaptNode produces a fully-populated element from a raw node record.
func adaptNode(n graph.Node) *NodeElement {
	full := n.DisplayLabel()
	el := &NodeElement{
		ID:          n.ID,
		Type:        n.Type,
		Label:       truncateLabel(full),
		Full:        full,
		Difficulty:  DefaultDifficulty,
		Pagerank:    DefaultPagerank,
		Opacity:     1,
		Grabbable:   true,
		classes:     classSet{},
	}
	if n.Difficulty != nil {
		el.Difficulty = *n.Difficulty
	}
	if n.Pagerank != nil {
		el.Pagerank = *n.Pagerank
	}
	if n.ClusterID != nil {
		el.ClusterID = *n.ClusterID
	}
	if n.BridgeScore != nil {
		el.BridgeScore = *n.BridgeScore
	}
	if n.PrerequisiteDepth != nil {
		el.Depth = *n.PrerequisiteDepth
	}
	return el
}

// adaptEdge produces a fully-populated element from a raw edge record.
// The element id is deterministic per (source, target, type) so repeated
// adaptation of the same graph yields the same ids.
func adaptEdge(e graph.Edge) *EdgeElement {
	el := &EdgeElement{
		ID:           uuid.NewSHA1(edgeIDSpace, []byte(e.Source+"\x00"+e.Target+"\x00"+e.Type)).String(),
		Source:       e.Source,
		Target:       e.Target,
		Type:         e.Type,
		Weight:       DefaultWeight,
		InterCluster: e.InterCluster,
		Opacity:      1,
		classes:      classSet{},
	}
	if e.Weight != nil {
		el.Weight = *e.Weight
	}
	return el
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLabelRunes {
		return s
	}
	return string(runes[:MaxLabelRunes-1]) + "…"
}

// =============================================================================
// Accessors
// =============================================================================

// Nodes returns all node elements in input order.
func (s *Scene) Nodes() []*NodeElement { return s.nodes }

// Edges returns all edge elements in input order.
func (s *Scene) Edges() []*EdgeElement { return s.edges }

// Node returns the node element with the given id.
func (s *Scene) Node(id string) (*NodeElement, bool) {
	n, ok := s.nodeByID[id]
	return n, ok
}

// Edge returns the edge element with the given synthetic id.
func (s *Scene) Edge(id string) (*EdgeElement, bool) {
	e, ok := s.edgeByID[id]
	return e, ok
}

// IncidentEdges returns every edge touching the node, in input order.
func (s *Scene) IncidentEdges(nodeID string) []*EdgeElement {
	return s.incident[nodeID]
}

// EdgesBetween returns the directed edges from source to target.
func (s *Scene) EdgesBetween(source, target string) []*EdgeElement {
	var out []*EdgeElement
	for _, e := range s.incident[source] {
		if e.Source == source && e.Target == target {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of node elements.
func (s *Scene) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edge elements.
func (s *Scene) EdgeCount() int { return len(s.edges) }
