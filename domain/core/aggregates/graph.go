package aggregates

import (
	"topicgraph-backend/domain/core/entities"
)

// Graph is an immutable undirected adjacency snapshot built from the current
// topic set. Topic IDs are interned into dense integer indices at build time
// so that traversal loops hash integers instead of strings; the ids slice maps
// indices back to topic IDs for result materialization.
type Graph struct {
	ids       []string
	index     map[string]int
	neighbors [][]int
	edgeCount int
}

// DanglingReference records a topic whose parent ID does not resolve to any
// current topic. The edge is dropped from the graph; the caller decides how
// to surface the integrity problem.
type DanglingReference struct {
	TopicID  string
	ParentID string
}

// NewGraphFromTopics builds the adjacency snapshot for the given set of
// current topics. Every topic gets a node, including topics with no parent
// and no children. For each topic with a resolvable parent a single
// bidirectional edge is inserted between topic and parent, deduplicated.
// Edges whose parent ID is absent from the set are dropped and reported.
func NewGraphFromTopics(topics []*entities.Topic) (*Graph, []DanglingReference) {
	g := &Graph{
		ids:       make([]string, 0, len(topics)),
		index:     make(map[string]int, len(topics)),
		neighbors: make([][]int, 0, len(topics)),
	}

	for _, topic := range topics {
		g.intern(topic.ID)
	}

	var dangling []DanglingReference
	seen := make(map[[2]int]struct{}, len(topics))
	for _, topic := range topics {
		if !topic.HasParent() {
			continue
		}
		parentIdx, ok := g.index[topic.Parent()]
		if !ok {
			dangling = append(dangling, DanglingReference{
				TopicID:  topic.ID,
				ParentID: topic.Parent(),
			})
			continue
		}
		g.addEdge(seen, g.index[topic.ID], parentIdx)
	}

	return g, dangling
}

// intern assigns a dense index to id, returning the existing index when the
// id was already interned.
func (g *Graph) intern(id string) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.ids)
	g.ids = append(g.ids, id)
	g.index[id] = idx
	g.neighbors = append(g.neighbors, nil)
	return idx
}

// addEdge inserts a symmetric edge between a and b exactly once.
func (g *Graph) addEdge(seen map[[2]int]struct{}, a, b int) {
	if a == b {
		return
	}
	key := [2]int{a, b}
	if a > b {
		key = [2]int{b, a}
	}
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}
	g.neighbors[a] = append(g.neighbors[a], b)
	g.neighbors[b] = append(g.neighbors[b], a)
	g.edgeCount++
}

// NodeCount returns the number of nodes in the snapshot.
func (g *Graph) NodeCount() int {
	return len(g.ids)
}

// EdgeCount returns the number of undirected edges in the snapshot.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Contains reports whether the snapshot has a node for the given topic ID.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// IndexOf returns the dense index for a topic ID.
func (g *Graph) IndexOf(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// IDOf returns the topic ID for a dense index.
func (g *Graph) IDOf(idx int) string {
	return g.ids[idx]
}

// IDsOf maps a sequence of dense indices back to topic IDs.
func (g *Graph) IDsOf(indices []int) []string {
	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = g.ids[idx]
	}
	return ids
}

// NeighborIndices returns the adjacency list for a node. The returned slice
// is owned by the graph and must not be modified.
func (g *Graph) NeighborIndices(idx int) []int {
	return g.neighbors[idx]
}

// Neighbors returns the neighbor topic IDs for a topic ID. Unknown IDs yield
// an empty slice.
func (g *Graph) Neighbors(id string) []string {
	idx, ok := g.index[id]
	if !ok {
		return []string{}
	}
	return g.IDsOf(g.neighbors[idx])
}

// Degree returns the number of edges touching a node.
func (g *Graph) Degree(idx int) int {
	return len(g.neighbors[idx])
}
