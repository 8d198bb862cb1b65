// Package graph provides the data model and serialization types for
// knowledge graphs and planned layouts.
//
// This package defines the canonical wire format for conceptflow's graph
// data, used for JSON files, the HTTP API, and the Cytoscape.js export
// consumed by browser frontends.
//
// # Core Types
//
//   - [Graph]: Node-link format for knowledge graphs
//   - [Node], [Edge]: Structural types with pedagogical attributes
//   - [Layout]: Planned positions produced by the position planner
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "ch1", "type": "Chunk", "prerequisite_depth": 0}],
//	  "edges": [{"source": "ch1", "target": "c1", "type": "EXPLAINS"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("graph.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Optional Attributes
//
// Node attributes beyond id and type are optional in the wire format and
// defaulted by the scene adapter (pkg/scene), so downstream consumers always
// operate on fully-populated records. Pointer fields distinguish "absent"
// from zero values.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
