// Package services provides domain services for the topic graph backend.
// This file implements shortest-path search over an adjacency snapshot.
package services

import (
	"topicgraph-backend/domain/core/aggregates"
)

// PathFinder computes shortest paths between nodes of a Graph snapshot.
// This is pure domain logic with no infrastructure dependencies; it works
// exclusively on interned node indices.
type PathFinder struct {
	maxDepth      int
	bidirectional bool
}

// NewPathFinder creates a path finder. maxDepth bounds the number of nodes a
// returned path may contain; bidirectional selects the two-frontier search.
func NewPathFinder(maxDepth int, bidirectional bool) *PathFinder {
	return &PathFinder{
		maxDepth:      maxDepth,
		bidirectional: bidirectional,
	}
}

// ShortestPath returns one shortest path from start to goal as a sequence of
// node indices, start and goal included. A nil result means no path exists
// within the depth limit; "truly disconnected" and "reachable only beyond the
// limit" are intentionally not distinguished.
func (f *PathFinder) ShortestPath(g *aggregates.Graph, start, goal int) []int {
	if start == goal {
		return []int{start}
	}
	if f.bidirectional {
		return f.searchBidirectional(g, start, goal)
	}
	return f.searchForward(g, start, goal)
}

type queueItem struct {
	node int
	path []int
}

// searchForward is plain breadth-first search carrying the accumulated path
// with each queue entry.
func (f *PathFinder) searchForward(g *aggregates.Graph, start, goal int) []int {
	queue := []queueItem{{node: start, path: []int{start}}}
	visited := make([]bool, g.NodeCount())

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if len(item.path) > f.maxDepth {
			continue
		}
		if item.node == goal {
			return item.path
		}
		if visited[item.node] {
			continue
		}
		visited[item.node] = true

		for _, neighbor := range g.NeighborIndices(item.node) {
			if visited[neighbor] {
				continue
			}
			next := make([]int, len(item.path)+1)
			copy(next, item.path)
			next[len(item.path)] = neighbor
			queue = append(queue, queueItem{node: neighbor, path: next})
		}
	}

	return nil
}

// searchBidirectional runs two independent frontiers, forward from start and
// backward from goal, each capped at half the maximum depth. Frontiers expand
// one level at a time, alternating; the first node generated by one side that
// the other side has already visited is the meeting point, and the two
// partial paths are spliced there. Alternating whole levels keeps the result
// as short as what unidirectional search would find.
func (f *PathFinder) searchBidirectional(g *aggregates.Graph, start, goal int) []int {
	halfDepth := f.maxDepth / 2

	forward := map[int][]int{start: {start}}
	backward := map[int][]int{goal: {goal}}
	forwardQueue := []int{start}
	backwardQueue := []int{goal}

	for len(forwardQueue) > 0 || len(backwardQueue) > 0 {
		if len(forwardQueue) > 0 {
			var meetFwd, meetBwd []int
			forwardQueue, meetFwd, meetBwd = f.expandLevel(g, forwardQueue, forward, backward, halfDepth)
			if meetFwd != nil {
				return f.spliceWithinDepth(meetFwd, meetBwd)
			}
		}
		if len(backwardQueue) > 0 {
			var meetBwd, meetFwd []int
			backwardQueue, meetBwd, meetFwd = f.expandLevel(g, backwardQueue, backward, forward, halfDepth)
			if meetBwd != nil {
				return f.spliceWithinDepth(meetFwd, meetBwd)
			}
		}
	}

	return nil
}

// expandLevel advances one frontier by a single level. It returns the next
// level's queue, or the two partial paths when a newly generated node is
// already present in the other frontier's visited map.
func (f *PathFinder) expandLevel(
	g *aggregates.Graph,
	queue []int,
	visited map[int][]int,
	other map[int][]int,
	limit int,
) ([]int, []int, []int) {
	var next []int

	for _, node := range queue {
		path := visited[node]
		if len(path) > limit {
			continue
		}
		for _, neighbor := range g.NeighborIndices(node) {
			if _, ok := visited[neighbor]; ok {
				continue
			}
			extended := make([]int, len(path)+1)
			copy(extended, path)
			extended[len(path)] = neighbor
			visited[neighbor] = extended

			if otherPath, ok := other[neighbor]; ok {
				return nil, extended, otherPath
			}
			next = append(next, neighbor)
		}
	}

	return next, nil, nil
}

// spliceWithinDepth joins the two partial paths and re-applies the whole-path
// bound: with an even maxDepth the per-side cap admits one node too many, so
// the spliced length is checked again. The first meeting already yields a
// shortest path, so an over-long splice means no path fits the limit.
func (f *PathFinder) spliceWithinDepth(forwardPath, backwardPath []int) []int {
	path := splicePaths(forwardPath, backwardPath)
	if len(path) > f.maxDepth {
		return nil
	}
	return path
}

// splicePaths joins a forward partial path (start..meeting) with a backward
// partial path (goal..meeting). The backward path is reversed and its leading
// duplicate of the meeting node removed before concatenation.
func splicePaths(forwardPath, backwardPath []int) []int {
	result := make([]int, 0, len(forwardPath)+len(backwardPath)-1)
	result = append(result, forwardPath...)
	for i := len(backwardPath) - 2; i >= 0; i-- {
		result = append(result, backwardPath[i])
	}
	return result
}

// WithinDistance performs a hop-counting breadth-first traversal from center
// and returns, in discovery order, every node whose hop count is at most
// maxDistance. The center itself is always first with hop count zero.
func (f *PathFinder) WithinDistance(g *aggregates.Graph, center, maxDistance int) []int {
	hops := make(map[int]int, 16)
	hops[center] = 0
	result := []int{center}
	queue := []int{center}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if hops[node] >= maxDistance {
			continue
		}
		for _, neighbor := range g.NeighborIndices(node) {
			if _, ok := hops[neighbor]; ok {
				continue
			}
			hops[neighbor] = hops[node] + 1
			result = append(result, neighbor)
			queue = append(queue, neighbor)
		}
	}

	return result
}
