package pathfind

import (
	"container/heap"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
)

// StepCost is the cost of moving one cell, in feet. Diagonal steps cost
// the same as cardinal ones, the usual tabletop convention.
const StepCost = 5

// NoBudget disables the movement cap. Any negative budget does.
const NoBudget = -1

// Costs holds sparse terrain cost multipliers keyed by cell. Cells
// without an entry cost StepCost per step.
type Costs map[geo.Cell]float64

// PathResult is the outcome of a path query. Path is empty and
// ReachedGoal false when no route exists or the budget runs out first;
// that is a normal result, not an error.
type PathResult struct {
	Path        []geo.Cell `json:"path"`
	TotalCost   float64    `json:"total_cost"`
	ReachedGoal bool       `json:"reached_goal"`
}

type node struct {
	cell    geo.Cell
	g, f    float64
	parent  *node
	openIdx int
}

type openHeap []*node

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].openIdx, h[j].openIdx = i, j
}

func (h *openHeap) Push(x interface{}) {
	n := x.(*node)
	n.openIdx = len(*h)
	*h = append(*h, n)
}

func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	x.openIdx = -1
	*h = old[:n-1]
	return x
}

// dirs are the 8 king moves, cardinals first.
var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, -1}, {0, 1},
	{1, -1}, {-1, -1}, {1, 1}, {-1, 1},
}

// FindPath runs A* over the 8-connected grid from start to goal. Each
// step costs StepCost times the destination cell's terrain multiplier.
// A non-negative budget caps cumulative cost: cells that would exceed it
// are never expanded, so a budget below the optimal cost fails the query.
// Walls are in grid space, the same unit as the cells.
func FindPath(start, goal geo.Cell, width, height int, walls []geo.Segment, terrain Costs, budget float64) PathResult {
	if start == goal {
		return PathResult{Path: []geo.Cell{start}, TotalCost: 0, ReachedGoal: true}
	}

	blocking := movementWalls(walls)

	startNode := &node{cell: start, f: heuristic(start, goal)}
	open := &openHeap{startNode}
	heap.Init(open)
	nodes := map[geo.Cell]*node{start: startNode}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.cell == goal {
			return PathResult{Path: reconstruct(cur), TotalCost: cur.g, ReachedGoal: true}
		}
		for _, d := range dirs {
			next := geo.Cell{X: cur.cell.X + d[0], Y: cur.cell.Y + d[1]}
			if !next.InBounds(width, height) {
				continue
			}
			if MovementBlocked(cur.cell, next, blocking) {
				continue
			}
			ng := cur.g + stepCost(next, terrain)
			if budget >= 0 && ng > budget {
				continue
			}
			if old, ok := nodes[next]; ok {
				if ng < old.g {
					old.g = ng
					old.f = ng + heuristic(next, goal)
					old.parent = cur
					if old.openIdx >= 0 {
						heap.Fix(open, old.openIdx)
					} else {
						heap.Push(open, old)
					}
				}
			} else {
				nn := &node{cell: next, g: ng, f: ng + heuristic(next, goal), parent: cur, openIdx: -1}
				nodes[next] = nn
				heap.Push(open, nn)
			}
		}
	}
	return PathResult{}
}

// MovementBlocked reports whether a wall stops the step between two cells.
// The step is the straight line between the cell centers in grid space;
// any movement-blocking wall crossing or touching that line blocks it.
func MovementBlocked(a, b geo.Cell, walls []geo.Segment) bool {
	ca := geo.Pt(float64(a.X)+0.5, float64(a.Y)+0.5)
	cb := geo.Pt(float64(b.X)+0.5, float64(b.Y)+0.5)
	for _, w := range walls {
		if !w.BlocksMovement() {
			continue
		}
		if geo.SegmentsIntersect(ca, cb, w.A, w.B) {
			return true
		}
	}
	return false
}

// heuristic is Chebyshev distance times the step cost. It never
// overestimates while terrain multipliers stay at 1 or above.
func heuristic(a, b geo.Cell) float64 {
	return float64(a.Chebyshev(b) * StepCost)
}

func stepCost(to geo.Cell, terrain Costs) float64 {
	if mult, ok := terrain[to]; ok {
		return StepCost * mult
	}
	return StepCost
}

func movementWalls(walls []geo.Segment) []geo.Segment {
	out := make([]geo.Segment, 0, len(walls))
	for _, w := range walls {
		if w.BlocksMovement() {
			out = append(out, w)
		}
	}
	return out
}

func reconstruct(goal *node) []geo.Cell {
	var rev []geo.Cell
	for n := goal; n != nil; n = n.parent {
		rev = append(rev, n.cell)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
