package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types. Each drives a distinct shape and color in the rendered view.
const (
	NodeTypeChunk      = "Chunk"
	NodeTypeConcept    = "Concept"
	NodeTypeAssessment = "Assessment"
)

// Edge types: the nine pedagogical relation kinds. Layout treats these as an
// opaque classification used only to pick a display style.
const (
	EdgeRequires     = "REQUIRES"
	EdgeExplains     = "EXPLAINS"
	EdgeExemplifies  = "EXEMPLIFIES"
	EdgeTests        = "TESTS"
	EdgeElaborates   = "ELABORATES"
	EdgeContrasts    = "CONTRASTS"
	EdgeSummarizes   = "SUMMARIZES"
	EdgeApplies      = "APPLIES"
	EdgeRemediates   = "REMEDIATES"
)

// EdgeTypes lists all pedagogical relation kinds in display order.
var EdgeTypes = []string{
	EdgeRequires,
	EdgeExplains,
	EdgeExemplifies,
	EdgeTests,
	EdgeElaborates,
	EdgeContrasts,
	EdgeSummarizes,
	EdgeApplies,
	EdgeRemediates,
}

// ValidNodeTypes is the set of accepted node types.
var ValidNodeTypes = map[string]bool{
	NodeTypeChunk:      true,
	NodeTypeConcept:    true,
	NodeTypeAssessment: true,
}

// =============================================================================
// Graph - Knowledge Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for knowledge graphs.
// The full node/edge set is supplied once at initialization; this core never
// creates, renames, or deletes elements during a session.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is one learning chunk, concept, or assessment in the wire format.
//
// Optional attributes use pointers so that an absent field is distinguishable
// from an explicit zero; defaults are applied by the scene adapter, not here.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"`            // Chunk, Concept, or Assessment
	Label string `json:"label,omitempty"` // Display label (defaults to ID)

	Difficulty        *int     `json:"difficulty,omitempty"`         // [1,5], default 3
	Pagerank          *float64 `json:"pagerank,omitempty"`           // ≥ 0, default 0.01
	ClusterID         *int     `json:"cluster_id,omitempty"`         // ordering key within a row, default 0
	BridgeScore       *float64 `json:"bridge_score,omitempty"`       // ≥ 0, default 0
	PrerequisiteDepth *int     `json:"prerequisite_depth,omitempty"` // row assignment, default 0
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge represents a directed pedagogical relation between two nodes.
// Both endpoints must exist in the node set. Cycles are not rejected here;
// cycle-freedom, if required, is a property of the upstream data.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`

	Weight       *float64 `json:"weight,omitempty"`                 // [0,1]
	InterCluster bool     `json:"is_inter_cluster_edge,omitempty"` // default false
}
