// Package pathfinding runs A* over the 8-connected tile grid.
package pathfinding

import (
	"container/heap"
	"context"
	"time"

	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/logging"
)

const (
	straightCost = 10
	diagonalCost = 14

	// DefaultMaxExpansions bounds how many nodes one search may close.
	DefaultMaxExpansions = 20000
)

// Grid is the read-only view of the map a search needs. Walkable reports
// whether c may be entered and whether a tile exists there at all.
type Grid interface {
	Walkable(c coord.Coord) (walkable bool, exists bool)
	Neighbours(c coord.Coord) []coord.Coord
}

// Finder searches paths on a Grid. It keeps no per-search state, so one
// Finder can serve concurrent searches once the grid stops changing.
type Finder struct {
	grid          Grid
	maxExpansions int
}

// Option configures a Finder.
type Option func(*Finder)

// WithMaxExpansions caps the closed set of a single search. Values below one
// are ignored.
func WithMaxExpansions(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.maxExpansions = n
		}
	}
}

// NewFinder creates a Finder over grid.
func NewFinder(grid Grid, opts ...Option) *Finder {
	f := &Finder{grid: grid, maxExpansions: DefaultMaxExpansions}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindPath returns the steps from start to target, excluding start and
// including target. ok is false when either end has no tile, when the target
// cannot be reached, or when the search is cancelled or runs out of budget.
// A search from a tile to itself succeeds with an empty path.
func (f *Finder) FindPath(ctx context.Context, start, target coord.Coord) ([]coord.Coord, bool) {
	if _, ok := f.grid.Walkable(start); !ok {
		return nil, false
	}
	if _, ok := f.grid.Walkable(target); !ok {
		return nil, false
	}
	if start == target {
		return []coord.Coord{}, true
	}

	began := time.Now()
	nodes := map[coord.Coord]*node{}
	closed := map[coord.Coord]struct{}{}
	open := &openSet{}

	first := &node{pos: start, h: Distance(start, target)}
	nodes[start] = first
	heap.Push(open, first)

	expansions := 0
	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}

		current := heap.Pop(open).(*node)
		if current.pos == target {
			path := reconstruct(current)
			logging.WithComponent("pathfinding").Debug("Path found",
				"start", start, "target", target, "steps", len(path),
				"cost", current.g, "expansions", expansions, "duration", time.Since(began))
			return path, true
		}

		closed[current.pos] = struct{}{}
		expansions++
		if expansions >= f.maxExpansions {
			logging.WithComponent("pathfinding").Debug("Search budget exhausted",
				"start", start, "target", target, "expansions", expansions)
			return nil, false
		}

		for _, n := range f.grid.Neighbours(current.pos) {
			if _, done := closed[n]; done {
				continue
			}
			if walkable, ok := f.grid.Walkable(n); !ok || !walkable {
				continue
			}

			g := current.g + stepCost(current.pos, n)
			next, seen := nodes[n]
			if !seen {
				next = &node{pos: n, h: Distance(n, target), g: g, parent: current}
				nodes[n] = next
				heap.Push(open, next)
				continue
			}
			if g < next.g {
				next.g = g
				next.parent = current
				heap.Fix(open, next.index)
			}
		}
	}

	return nil, false
}

// FindPathVector is FindPath for continuous positions. Both ends are
// truncated to their tiles; the result is nil when there is no path.
func (f *Finder) FindPathVector(ctx context.Context, start, target coord.Vec) []coord.Vec {
	path, ok := f.FindPath(ctx, start.Coord(), target.Coord())
	if !ok {
		return nil
	}
	out := make([]coord.Vec, len(path))
	for i, c := range path {
		out[i] = c.Vec()
	}
	return out
}

// Distance is the octile heuristic: the cost of the cheapest unobstructed
// route between a and b.
func Distance(a, b coord.Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return diagonalCost*min(dx, dy) + straightCost*abs(dx-dy)
}

// PathCost sums the step costs of walking path from start.
func PathCost(start coord.Coord, path []coord.Coord) int {
	total := 0
	prev := start
	for _, c := range path {
		total += stepCost(prev, c)
		prev = c
	}
	return total
}

func stepCost(a, b coord.Coord) int {
	if a.X != b.X && a.Y != b.Y {
		return diagonalCost
	}
	return straightCost
}

func reconstruct(end *node) []coord.Coord {
	var path []coord.Coord
	for n := end; n.parent != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type node struct {
	pos    coord.Coord
	g, h   int
	parent *node
	index  int
}

func (n *node) f() int { return n.g + n.h }

// openSet orders nodes by f, breaking ties on the smaller h.
type openSet []*node

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f() != q[j].f() {
		return q[i].f() < q[j].f()
	}
	return q[i].h < q[j].h
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	item := x.(*node)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
