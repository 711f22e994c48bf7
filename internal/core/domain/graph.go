// Package domain contains the lazy valuation substrate: notifications,
// handles, lazy objects, pricing engines and instruments, plus the market
// graph those objects are built from.
package domain

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// NodeKind identifies what a market graph node builds into.
type NodeKind string

const (
	// KindQuote is a settable market quote.
	KindQuote NodeKind = "quote"
	// KindDerived is a quote computed from other quotes.
	KindDerived NodeKind = "derived"
	// KindLink is a relinkable handle over another quote.
	KindLink NodeKind = "link"
	// KindEngine is a pricing engine.
	KindEngine NodeKind = "engine"
	// KindInstrument is a valued instrument.
	KindInstrument NodeKind = "instrument"
)

// Node is a named object in a market graph.
type Node struct {
	Name         string
	Kind         NodeKind
	Dependencies []string
}

// Graph represents the dependency graph of a market: which quotes feed
// which derived quotes, links, engines and instruments.
type Graph struct {
	nodes      map[string]Node
	dependents map[string][]string
	order      []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]Node),
		dependents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// It returns an error if a node with the same name already exists.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.nodes[n.Name]; exists {
		return zerr.With(zerr.Wrap(ErrNodeAlreadyExists, "cannot add node"), "node", n.Name)
	}
	g.nodes[n.Name] = *n
	for _, dep := range n.Dependencies {
		g.dependents[dep] = append(g.dependents[dep], n.Name)
	}
	g.order = nil
	return nil
}

// Node returns the node registered under name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Validate checks for missing dependencies and cycles using a topological sort.
// It populates the walk order if successful.
func (g *Graph) Validate() error {
	order := make([]string, 0, len(g.nodes))
	visited := make(map[string]int, len(g.nodes)) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		node := g.nodes[u]
		for _, dep := range node.Dependencies {
			if _, exists := g.nodes[dep]; !exists {
				err := zerr.With(zerr.Wrap(ErrMissingDependency, "invalid reference"), "node", u)
				return zerr.With(err, "dependency", dep)
			}
			switch visited[dep] {
			case 1:
				return buildCycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	// Sorted roots keep the walk order stable between runs.
	for _, name := range slices.Sorted(maps.Keys(g.nodes)) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	g.order = order
	return nil
}

func buildCycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid market graph"), "cycle", strings.Join(cycle, " -> "))
}

// Walk returns an iterator that yields nodes with every dependency before its dependents.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, name := range g.order {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

// Dependents returns the names of nodes that depend directly on name.
func (g *Graph) Dependents(name string) []string {
	return slices.Clone(g.dependents[name])
}

// Upstream returns the sorted names of every node name depends on, directly or transitively.
func (g *Graph) Upstream(name string) []string {
	seen := make(map[string]bool)
	var collect func(string)
	collect = func(n string) {
		for _, dep := range g.nodes[n].Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			collect(dep)
		}
	}
	collect(name)

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// SetDependencies replaces the dependencies of an existing node and revalidates
// the graph. On failure the previous dependencies are restored.
func (g *Graph) SetDependencies(name string, deps []string) error {
	node, ok := g.nodes[name]
	if !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "cannot rewire node"), "node", name)
	}
	previous := node.Dependencies
	g.rewire(name, previous, deps)
	if err := g.Validate(); err != nil {
		g.rewire(name, deps, previous)
		if errRestore := g.Validate(); errRestore != nil {
			return errors.Join(err, errRestore)
		}
		return err
	}
	return nil
}

func (g *Graph) rewire(name string, from, to []string) {
	for _, dep := range from {
		g.dependents[dep] = slices.DeleteFunc(g.dependents[dep], func(d string) bool { return d == name })
	}
	for _, dep := range to {
		g.dependents[dep] = append(g.dependents[dep], name)
	}
	node := g.nodes[name]
	node.Dependencies = slices.Clone(to)
	g.nodes[name] = node
}
