package cavia

import (
	"slices"

	"github.com/samber/lo"
)

// DependencyGraph records which tokens depend on which.
type DependencyGraph struct {
	nodes map[Token]*node
	order []Token // Preserve registration order
}

type node struct {
	token        Token
	dependencies []Token
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[Token]*node),
		order: make([]Token, 0),
	}
}

// AddNode adds a node with its dependencies. Adding a token twice replaces
// its dependencies but keeps its original position.
func (g *DependencyGraph) AddNode(token Token, dependencies []Token) {
	if _, exists := g.nodes[token]; !exists {
		g.order = append(g.order, token)
	}

	g.nodes[token] = &node{
		token:        token,
		dependencies: slices.Clone(dependencies),
	}
}

// GetDependencies returns the dependencies of a node.
func (g *DependencyGraph) GetDependencies(token Token) []Token {
	if node, ok := g.nodes[token]; ok {
		return node.dependencies
	}

	return nil
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(token Token) bool {
	_, ok := g.nodes[token]

	return ok
}

// Tokens returns all nodes in registration order.
func (g *DependencyGraph) Tokens() []Token {
	return slices.Clone(g.order)
}

// Clone returns an independent copy of the graph.
func (g *DependencyGraph) Clone() *DependencyGraph {
	clone := NewDependencyGraph()
	for _, token := range g.order {
		clone.AddNode(token, g.nodes[token].dependencies)
	}

	return clone
}

// TopologicalSort returns nodes in dependency order.
// Nodes without dependencies maintain their registration order (FIFO).
// Returns error if circular dependency detected.
func (g *DependencyGraph) TopologicalSort() ([]Token, error) {
	visited := make(map[Token]bool)
	visiting := make(map[Token]bool)
	result := make([]Token, 0, len(g.nodes))

	// Visit nodes in registration order to preserve FIFO for nodes without dependencies
	for _, token := range g.order {
		if err := g.visit(token, visited, visiting, nil, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal. stack holds the current path for error reporting.
func (g *DependencyGraph) visit(token Token, visited, visiting map[Token]bool, stack []Token, result *[]Token) error {
	if visited[token] {
		return nil
	}

	if visiting[token] {
		start := slices.Index(stack, token)
		cycle := append(slices.Clone(stack[start:]), token)

		return ErrCircularDependency(lo.Map(cycle, func(t Token, _ int) string {
			return TokenName(t)
		}))
	}

	node := g.nodes[token]
	if node == nil {
		// Node not in graph, skip (may be optional dependency)
		return nil
	}

	visiting[token] = true
	stack = append(stack, token)

	// Visit dependencies first
	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, visiting, stack, result); err != nil {
			return err
		}
	}

	visiting[token] = false
	visited[token] = true
	*result = append(*result, token)

	return nil
}
