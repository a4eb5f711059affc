// Package depgraph keeps a transitively closed set of dependencies.
// Used by optset to store "requires" rules between options
package depgraph

import (
	"errors"
	"fmt"
)

// ErrSelfDependency is returned when a dependency points at itself
var ErrSelfDependency = errors.New("dependent must not equal dependee")

// Dependency states that Dependent requires Dependee
type Dependency[T comparable] struct {
	Dependent T
	Dependee  T
}

// NewDependency validates and returns a dependency
func NewDependency[T comparable](dependent, dependee T) (Dependency[T], error) {
	if dependent == dependee {
		return Dependency[T]{}, fmt.Errorf("%w: %v", ErrSelfDependency, dependent)
	}
	return Dependency[T]{Dependent: dependent, Dependee: dependee}, nil
}

// String renders the dependency as "a -> b"
func (d Dependency[T]) String() string {
	return fmt.Sprintf("%v -> %v", d.Dependent, d.Dependee)
}

// Graph is a set of dependencies closed under transitivity.
// Whenever a->b and b->c are present, a->c is present too, cycles included.
// Self edges are never stored. Not safe for concurrent mutation.
type Graph[T comparable] struct {
	deps  []Dependency[T]
	index map[Dependency[T]]struct{}
}

// New returns an empty graph
func New[T comparable]() *Graph[T] {
	return &Graph[T]{index: make(map[Dependency[T]]struct{})}
}

// Add inserts d and every dependency it implies.
// It returns false if d was already present.
func (g *Graph[T]) Add(d Dependency[T]) bool {
	if d.Dependent == d.Dependee {
		return false
	}
	if g.index == nil {
		g.index = make(map[Dependency[T]]struct{})
	}
	if _, exists := g.index[d]; exists {
		return false
	}

	g.deps = append(g.deps, d)
	g.index[d] = struct{}{}

	// d.Dependent inherits everything d.Dependee already requires
	for _, inherited := range g.DependeesOf(d.Dependee) {
		if inherited == d.Dependent {
			continue
		}
		g.Add(Dependency[T]{Dependent: d.Dependent, Dependee: inherited})
	}

	// everything that requires d.Dependent now requires d.Dependee
	for _, ancestor := range g.DependentsOf(d.Dependent) {
		if ancestor == d.Dependee {
			continue
		}
		g.Add(Dependency[T]{Dependent: ancestor, Dependee: d.Dependee})
	}

	return true
}

// Contains reports whether d is in the closed set
func (g *Graph[T]) Contains(d Dependency[T]) bool {
	_, ok := g.index[d]
	return ok
}

// Len returns the number of dependencies in the closed set
func (g *Graph[T]) Len() int { return len(g.deps) }

// All returns every dependency in insertion order.
// The returned slice is a copy.
func (g *Graph[T]) All() []Dependency[T] {
	out := make([]Dependency[T], len(g.deps))
	copy(out, g.deps)
	return out
}

// DependeesOf returns everything x requires, directly or transitively
func (g *Graph[T]) DependeesOf(x T) []T {
	var out []T
	for _, d := range g.deps {
		if d.Dependent == x {
			out = append(out, d.Dependee)
		}
	}
	return out
}

// DependentsOf returns everything that requires x, directly or transitively
func (g *Graph[T]) DependentsOf(x T) []T {
	var out []T
	for _, d := range g.deps {
		if d.Dependee == x {
			out = append(out, d.Dependent)
		}
	}
	return out
}
