package services

import (
	"topicgraph-backend/domain/core/aggregates"
)

// ConnectivityReport summarizes the component structure of a graph snapshot.
type ConnectivityReport struct {
	FullyConnected bool     `json:"fullyConnected"`
	ComponentCount int      `json:"componentCount"`
	IsolatedIDs    []string `json:"isolatedIds"`
}

// ConnectivityAnalyzer inspects component structure of adjacency snapshots.
// Traversal is iterative with an explicit stack; topic hierarchies are
// user-generated and their depth is unbounded, so recursion is not safe here.
type ConnectivityAnalyzer struct{}

// NewConnectivityAnalyzer creates a connectivity analyzer.
func NewConnectivityAnalyzer() *ConnectivityAnalyzer {
	return &ConnectivityAnalyzer{}
}

// Analyze counts connected components and flags isolated nodes, i.e.
// components of exactly one node with no edges. An empty graph is defined as
// fully connected with zero components.
func (a *ConnectivityAnalyzer) Analyze(g *aggregates.Graph) ConnectivityReport {
	report := ConnectivityReport{
		FullyConnected: true,
		IsolatedIDs:    []string{},
	}
	if g == nil || g.NodeCount() == 0 {
		return report
	}

	visited := make([]bool, g.NodeCount())
	for root := 0; root < g.NodeCount(); root++ {
		if visited[root] {
			continue
		}
		report.ComponentCount++

		size := 0
		stack := []int{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[node] {
				continue
			}
			visited[node] = true
			size++
			for _, neighbor := range g.NeighborIndices(node) {
				if !visited[neighbor] {
					stack = append(stack, neighbor)
				}
			}
		}

		if size == 1 && g.Degree(root) == 0 {
			report.IsolatedIDs = append(report.IsolatedIDs, g.IDOf(root))
		}
	}

	report.FullyConnected = report.ComponentCount <= 1
	return report
}
