package pathfind

import (
	"container/heap"
	"sort"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
)

// ReachableCell is a cell the origin can reach, with the cheapest
// cumulative cost of getting there.
type ReachableCell struct {
	Cell geo.Cell `json:"cell"`
	Cost float64  `json:"cost"`
}

// ReachableCells floods outward from origin, Dijkstra style, and returns
// every cell whose cheapest cumulative cost stays within budget, origin
// included at cost zero. A negative budget lifts the cap and floods the
// whole connected region. Results are sorted row-major.
func ReachableCells(origin geo.Cell, budget float64, width, height int, walls []geo.Segment, terrain Costs) []ReachableCell {
	blocking := movementWalls(walls)

	startNode := &node{cell: origin}
	open := &openHeap{startNode}
	heap.Init(open)
	nodes := map[geo.Cell]*node{origin: startNode}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
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
					old.f = ng
					if old.openIdx >= 0 {
						heap.Fix(open, old.openIdx)
					} else {
						heap.Push(open, old)
					}
				}
			} else {
				nn := &node{cell: next, g: ng, f: ng, openIdx: -1}
				nodes[next] = nn
				heap.Push(open, nn)
			}
		}
	}

	out := make([]ReachableCell, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ReachableCell{Cell: n.cell, Cost: n.g})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}
